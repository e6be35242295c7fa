package app

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Ghost-Developmentx/cashly-frontend-sub000/internal/actions"
	"github.com/Ghost-Developmentx/cashly-frontend-sub000/internal/types"
)

// sendSuccessAction rebuilds the direct invoice-send response as an
// invoice_send_success action so both paths share one reducer.
func sendSuccessAction(msg invoiceSentMsg) (actions.Action, error) {
	if msg.invoice == nil {
		return actions.Action{}, errors.New("invoice send response missing invoice")
	}
	data, err := json.Marshal(actions.InvoicePayload{
		Invoice:          msg.invoice,
		HostedInvoiceURL: msg.hostedURL,
	})
	if err != nil {
		return actions.Action{}, err
	}
	return actions.Action{Type: actions.KindInvoiceSendSuccess, Data: data}, nil
}

func listRecents(recents RecentsStore) ([]*types.Conversation, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return recents.List(ctx)
}
