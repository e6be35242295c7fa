package conversation

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Ghost-Developmentx/cashly-frontend-sub000/internal/actions"
	"github.com/Ghost-Developmentx/cashly-frontend-sub000/internal/logging"
	"github.com/Ghost-Developmentx/cashly-frontend-sub000/internal/types"
)

// ForecastHandler owns the forecast slice separately from the generic
// dispatcher: forecast payloads are chart-ready time series with scenario
// branches and have their own export behavior.
type ForecastHandler struct {
	forecast *types.Forecast
	log      logging.Logger
}

func NewForecastHandler(log logging.Logger) *ForecastHandler {
	if log == nil {
		log = logging.Nop()
	}
	return &ForecastHandler{log: log}
}

// Handle accepts only the forecast kinds and replaces the current forecast
// wholesale. It declines every other kind so the orchestrator falls through
// to the generic dispatcher.
func (h *ForecastHandler) Handle(action actions.Action) bool {
	if !actions.IsForecastKind(action.Type) {
		return false
	}
	var payload actions.ForecastPayload
	if err := actions.DecodePayload(action.Data, &payload); err != nil {
		h.log.Error("forecast payload decode failed", logging.F("error", err.Error()))
		return true
	}
	if payload.Forecast == nil {
		h.log.Warn("forecast action without forecast payload", logging.F("type", string(action.Type)))
		return true
	}
	h.forecast = payload.Forecast
	return true
}

func (h *ForecastHandler) Current() *types.Forecast {
	if h == nil {
		return nil
	}
	return h.forecast
}

func (h *ForecastHandler) Clear() {
	if h == nil {
		return
	}
	h.forecast = nil
}

// WriteCSV serializes the current forecast's data points as CSV. It is a
// pure formatting operation with no network call.
func (h *ForecastHandler) WriteCSV(w io.Writer) error {
	if h == nil || h.forecast == nil {
		return fmt.Errorf("no forecast to export")
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "projected", "optimistic", "pessimistic"}); err != nil {
		return err
	}
	for _, point := range h.forecast.Points {
		if point == nil {
			continue
		}
		record := []string{
			point.Date,
			formatAmount(point.Projected),
			formatAmount(point.Optimistic),
			formatAmount(point.Pessimistic),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportFile writes the forecast CSV into dir with a timestamped name and
// returns the full path.
func (h *ForecastHandler) ExportFile(dir string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, "cashly-forecast-"+now.Format("20060102-150405")+".csv")
	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := h.WriteCSV(file); err != nil {
		file.Close()
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", err
	}
	return path, nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
