package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Ghost-Developmentx/cashly-frontend-sub000/internal/client"
	"github.com/Ghost-Developmentx/cashly-frontend-sub000/internal/conversation"
	"github.com/Ghost-Developmentx/cashly-frontend-sub000/internal/types"
)

const (
	queryCmdTimeout = 90 * time.Second
	apiCmdTimeout   = 10 * time.Second
)

func queryConversationCmd(api ConversationAPI, generation int, query string, history []*types.Message) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), queryCmdTimeout)
		defer cancel()
		resp, err := api.QueryConversation(ctx, query, history)
		if err != nil {
			return queryReplyMsg{generation: generation, err: err}
		}
		return queryReplyMsg{
			generation: generation,
			reply: conversation.Reply{
				Message: resp.Message,
				Actions: resp.Actions,
			},
		}
	}
}

func fetchConversationsCmd(api ConversationAPI) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), apiCmdTimeout)
		defer cancel()
		conversations, err := api.ListConversations(ctx)
		return conversationsMsg{conversations: conversations, err: err}
	}
}

func fetchConversationCmd(api ConversationAPI, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), apiCmdTimeout)
		defer cancel()
		conv, err := api.GetConversation(ctx, id)
		return conversationLoadedMsg{conversation: conv, err: err}
	}
}

func clearConversationsCmd(api ConversationAPI) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), apiCmdTimeout)
		defer cancel()
		return conversationsClearedMsg{err: api.ClearConversations(ctx)}
	}
}

func disconnectAccountCmd(api FinanceAPI, accountID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), apiCmdTimeout)
		defer cancel()
		return accountDisconnectedMsg{accountID: accountID, err: api.DisconnectAccount(ctx, accountID)}
	}
}

func deleteTransactionCmd(api FinanceAPI, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), apiCmdTimeout)
		defer cancel()
		return transactionMutatedMsg{op: "delete", id: id, err: api.DeleteTransaction(ctx, id)}
	}
}

func updateTransactionCmd(api FinanceAPI, id string, req client.TransactionRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), apiCmdTimeout)
		defer cancel()
		return transactionMutatedMsg{op: "update", id: id, err: api.UpdateTransaction(ctx, id, req)}
	}
}

func createTransactionCmd(api FinanceAPI, req client.TransactionRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), apiCmdTimeout)
		defer cancel()
		return transactionMutatedMsg{op: "create", err: api.CreateTransaction(ctx, req)}
	}
}

func sendInvoiceCmd(api FinanceAPI, invoiceID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), apiCmdTimeout)
		defer cancel()
		resp, err := api.SendInvoice(ctx, invoiceID)
		if err != nil {
			return invoiceSentMsg{invoiceID: invoiceID, err: err}
		}
		return invoiceSentMsg{
			invoiceID: invoiceID,
			invoice:   resp.Invoice,
			hostedURL: resp.HostedInvoiceURL,
		}
	}
}

func stripeDashboardLinkCmd(api FinanceAPI) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), apiCmdTimeout)
		defer cancel()
		url, err := api.StripeConnectDashboardLink(ctx)
		return stripeLinkMsg{kind: "dashboard", url: url, err: err}
	}
}

func stripeOnboardingLinkCmd(api FinanceAPI) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), apiCmdTimeout)
		defer cancel()
		url, err := api.StripeConnectOnboardingLink(ctx)
		return stripeLinkMsg{kind: "onboarding", url: url, err: err}
	}
}

func setupStripeConnectCmd(api FinanceAPI) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), apiCmdTimeout)
		defer cancel()
		status, err := api.SetupStripeConnect(ctx)
		return stripeSetupMsg{status: status, err: err}
	}
}

func exportForecastCmd(handler *conversation.ForecastHandler, dir string) tea.Cmd {
	return func() tea.Msg {
		path, err := handler.ExportFile(dir, time.Now())
		return forecastExportedMsg{path: path, err: err}
	}
}

func saveRecentCmd(recents RecentsStore, conv *types.Conversation) tea.Cmd {
	if recents == nil || conv == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), apiCmdTimeout)
		defer cancel()
		return recentsSavedMsg{err: recents.Upsert(ctx, conv)}
	}
}
