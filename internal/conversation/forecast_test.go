package conversation

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/Ghost-Developmentx/cashly-frontend-sub000/internal/actions"
	"github.com/Ghost-Developmentx/cashly-frontend-sub000/internal/types"
)

func TestForecastHandlerAcceptsOnlyForecastKinds(t *testing.T) {
	h := NewForecastHandler(nil)

	accepted := h.Handle(actions.Action{
		Type: actions.KindShowScenarioForecast,
		Data: raw(t, actions.ForecastPayload{Forecast: &types.Forecast{Scenario: "hiring a contractor"}}),
	})
	if !accepted {
		t.Fatalf("scenario forecast must be accepted")
	}
	if h.Current() == nil || h.Current().Scenario != "hiring a contractor" {
		t.Fatalf("forecast not stored: %+v", h.Current())
	}

	if h.Handle(actions.Action{Type: actions.KindShowAccounts}) {
		t.Fatalf("non-forecast kinds must be declined")
	}
	if h.Current() == nil {
		t.Fatalf("declining must not clear the stored forecast")
	}
}

func TestForecastHandlerSwallowsBadPayload(t *testing.T) {
	h := NewForecastHandler(nil)

	// Malformed and empty payloads are still claimed so the generic
	// dispatcher never sees a forecast kind.
	if !h.Handle(actions.Action{Type: actions.KindShowForecast, Data: []byte(`{"forecast":42}`)}) {
		t.Fatalf("malformed forecast payload must still be claimed")
	}
	if !h.Handle(actions.Action{Type: actions.KindShowForecast}) {
		t.Fatalf("missing forecast payload must still be claimed")
	}
	if h.Current() != nil {
		t.Fatalf("bad payloads must not install a forecast")
	}
}

func TestWriteCSV(t *testing.T) {
	h := NewForecastHandler(nil)
	h.forecast = &types.Forecast{Points: []*types.ForecastPoint{
		{Date: "2026-09-01", Projected: 1200.5, Optimistic: 1300, Pessimistic: 1100},
		nil,
		{Date: "2026-09-02", Projected: 1180},
	}}

	var sb strings.Builder
	if err := h.WriteCSV(&sb); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	want := "date,projected,optimistic,pessimistic\n" +
		"2026-09-01,1200.50,1300.00,1100.00\n" +
		"2026-09-02,1180.00,0.00,0.00\n"
	if sb.String() != want {
		t.Fatalf("csv = %q, want %q", sb.String(), want)
	}
}

func TestWriteCSVWithoutForecast(t *testing.T) {
	h := NewForecastHandler(nil)
	if err := h.WriteCSV(&strings.Builder{}); err == nil {
		t.Fatalf("expected an error with no forecast loaded")
	}
}

func TestExportFileNamesByTimestamp(t *testing.T) {
	h := NewForecastHandler(nil)
	h.forecast = &types.Forecast{Points: []*types.ForecastPoint{
		{Date: "2026-09-01", Projected: 900},
	}}

	dir := t.TempDir()
	now := time.Date(2026, 9, 1, 14, 30, 5, 0, time.UTC)
	path, err := h.ExportFile(dir, now)
	if err != nil {
		t.Fatalf("ExportFile: %v", err)
	}
	if !strings.HasSuffix(path, "cashly-forecast-20260901-143005.csv") {
		t.Fatalf("unexpected export path %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.HasPrefix(string(data), "date,projected,optimistic,pessimistic\n") {
		t.Fatalf("export missing header: %q", data)
	}
}
