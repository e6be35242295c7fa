package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	runewidth "github.com/mattn/go-runewidth"

	"github.com/Ghost-Developmentx/cashly-frontend-sub000/internal/actions"
	"github.com/Ghost-Developmentx/cashly-frontend-sub000/internal/types"
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
	panelTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	bannerStyle     = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("42")).
			Padding(0, 1)
	negativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	positiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// renderSurfaces draws every populated per-turn display slice under the
// transcript, in a stable order.
func renderSurfaces(state *actions.State, width int) string {
	if state == nil {
		return ""
	}
	var sections []string
	if state.ShowPlaidLink {
		sections = append(sections, renderPlaidPrompt(width))
	}
	if len(state.Accounts) > 0 {
		sections = append(sections, renderAccounts(state.Accounts, width))
	}
	if state.Transactions != nil {
		sections = append(sections, renderTransactions(state.Transactions, width))
	}
	if len(state.Invoices) > 0 {
		sections = append(sections, renderInvoices(state.Invoices, width))
	}
	if state.InvoicePreview != nil {
		sections = append(sections, renderInvoicePreview(state.InvoicePreview, width))
	}
	if state.PaymentLink != nil {
		sections = append(sections, renderPaymentLink(state.PaymentLink, width))
	}
	if state.StripeConnectStatus != nil || state.ShowStripeConnectSetup {
		sections = append(sections, renderStripeConnect(state.StripeConnectStatus, state.ShowStripeConnectSetup, width))
	}
	if state.Forecast != nil {
		sections = append(sections, renderForecast(state.Forecast, width))
	}
	return strings.Join(sections, "\n")
}

func renderPlaidPrompt(width int) string {
	body := panelTitleStyle.Render("Connect a bank account") + "\n" +
		"Cashly needs a linked bank account for this. Open the Cashly web app to\n" +
		"complete the secure Plaid flow, then ask me again."
	return panelStyle.Width(min(width-2, 72)).Render(body)
}

func renderAccounts(accounts []*types.Account, width int) string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("Accounts"))
	b.WriteString("\n")
	for _, account := range accounts {
		if account == nil {
			continue
		}
		name := runewidth.Truncate(account.Name, 28, "…")
		name = runewidth.FillRight(name, 28)
		balance := fmt.Sprintf("%12.2f", account.Balance)
		if account.Balance < 0 {
			balance = negativeStyle.Render(balance)
		}
		b.WriteString(fmt.Sprintf("%s %s  %s\n", name, balance, dimStyle.Render(account.Institution)))
	}
	return panelStyle.Width(min(width-2, 72)).Render(strings.TrimRight(b.String(), "\n"))
}

func renderTransactions(set *types.TransactionSet, width int) string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("Transactions"))
	b.WriteString("\n")
	for _, txn := range set.Transactions {
		if txn == nil {
			continue
		}
		desc := runewidth.Truncate(txn.Description, 32, "…")
		desc = runewidth.FillRight(desc, 32)
		amount := fmt.Sprintf("%10.2f", txn.Amount)
		if txn.Amount < 0 {
			amount = negativeStyle.Render(amount)
		} else {
			amount = positiveStyle.Render(amount)
		}
		b.WriteString(fmt.Sprintf("%s %s %s  %s\n", txn.Date, desc, amount, dimStyle.Render(txn.Category)))
	}
	summary := set.Summary
	b.WriteString(dimStyle.Render(fmt.Sprintf(
		"%d transactions · in %.2f · out %.2f · net %.2f",
		summary.Count, summary.TotalIncome, summary.TotalExpense, summary.NetAmount)))
	return panelStyle.Width(min(width-2, 80)).Render(b.String())
}

func renderInvoices(invoices []*types.Invoice, width int) string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("Invoices"))
	b.WriteString("\n")
	for _, inv := range invoices {
		if inv == nil {
			continue
		}
		client := runewidth.FillRight(runewidth.Truncate(inv.ClientName, 24, "…"), 24)
		b.WriteString(fmt.Sprintf("%s %10.2f  %s\n", client, inv.Amount, statusLabel(inv.Status)))
	}
	return panelStyle.Width(min(width-2, 72)).Render(strings.TrimRight(b.String(), "\n"))
}

func renderInvoicePreview(inv *types.Invoice, width int) string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("Invoice draft"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("To:     %s", inv.ClientName))
	if inv.ClientEmail != "" {
		b.WriteString(dimStyle.Render(" <" + inv.ClientEmail + ">"))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Amount: %.2f %s\n", inv.Amount, inv.Currency))
	if inv.Description != "" {
		b.WriteString("For:    " + inv.Description + "\n")
	}
	if inv.DueDate != "" {
		b.WriteString("Due:    " + inv.DueDate + "\n")
	}
	b.WriteString(dimStyle.Render("ctrl+s to send, or just tell me to change it"))
	return panelStyle.Width(min(width-2, 72)).Render(b.String())
}

func renderPaymentLink(link *types.PaymentLink, width int) string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("Invoice sent"))
	b.WriteString("\n")
	if link.ClientName != "" {
		b.WriteString(fmt.Sprintf("Payment link for %s", link.ClientName))
		if link.Amount > 0 {
			b.WriteString(fmt.Sprintf(" (%.2f)", link.Amount))
		}
		b.WriteString("\n")
	}
	b.WriteString(link.URL + "\n")
	b.WriteString(dimStyle.Render("ctrl+y to copy the link"))
	return bannerStyle.Width(min(width-2, 72)).Render(b.String())
}

func renderStripeConnect(status *types.StripeConnectStatus, showSetup bool, width int) string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("Payments"))
	b.WriteString("\n")
	switch {
	case status == nil:
		b.WriteString("Set up payments to send invoices your clients can pay online.\n")
	case status.Connected && status.ChargesEnabled:
		b.WriteString(positiveStyle.Render("Stripe account connected") + "\n")
		if status.PlatformFee > 0 {
			b.WriteString(dimStyle.Render(fmt.Sprintf("platform fee %.1f%%", status.PlatformFee)) + "\n")
		}
	case status.Connected:
		b.WriteString("Stripe account connected, onboarding incomplete.\n")
	default:
		b.WriteString("No payment account yet.\n")
	}
	if showSetup {
		b.WriteString(dimStyle.Render("ctrl+p to continue payment setup"))
	}
	return panelStyle.Width(min(width-2, 72)).Render(strings.TrimRight(b.String(), "\n"))
}

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

func renderForecast(forecast *types.Forecast, width int) string {
	var b strings.Builder
	title := forecast.Title
	if title == "" {
		title = "Cash flow forecast"
	}
	b.WriteString(panelTitleStyle.Render(title))
	b.WriteString("\n")
	if line := sparkline(forecast.Points, min(width-6, 60)); line != "" {
		b.WriteString(line + "\n")
	}
	summary := forecast.Summary
	b.WriteString(fmt.Sprintf("start %.2f → end %.2f (net %+.2f)\n",
		summary.StartingBalance, summary.EndingBalance, summary.NetChange))
	if summary.LowestDate != "" {
		b.WriteString(dimStyle.Render(fmt.Sprintf("lowest %.2f on %s", summary.LowestBalance, summary.LowestDate)) + "\n")
	}
	b.WriteString(dimStyle.Render("ctrl+e to export CSV"))
	return panelStyle.Width(min(width-2, 72)).Render(b.String())
}

// sparkline downsamples the projected series into one row of block runes.
func sparkline(points []*types.ForecastPoint, width int) string {
	values := make([]float64, 0, len(points))
	for _, p := range points {
		if p != nil {
			values = append(values, p.Projected)
		}
	}
	if len(values) == 0 || width <= 0 {
		return ""
	}
	if len(values) > width {
		sampled := make([]float64, width)
		for i := range sampled {
			sampled[i] = values[i*len(values)/width]
		}
		values = sampled
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	span := hi - lo
	var b strings.Builder
	for _, v := range values {
		idx := 0
		if span > 0 {
			idx = int((v - lo) / span * float64(len(sparkRunes)-1))
		}
		b.WriteRune(sparkRunes[idx])
	}
	return b.String()
}

func statusLabel(status types.InvoiceStatus) string {
	switch status {
	case types.InvoiceStatusPaid:
		return positiveStyle.Render("paid")
	case types.InvoiceStatusOverdue:
		return negativeStyle.Render("overdue")
	case types.InvoiceStatusPending:
		return "pending"
	default:
		return dimStyle.Render(string(status))
	}
}
