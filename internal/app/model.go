// Package app is the bubbletea front end: one chat viewport over the
// conversation orchestrator, with per-turn finance surfaces rendered under
// the transcript.
package app

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Ghost-Developmentx/cashly-frontend-sub000/internal/actions"
	"github.com/Ghost-Developmentx/cashly-frontend-sub000/internal/client"
	"github.com/Ghost-Developmentx/cashly-frontend-sub000/internal/config"
	"github.com/Ghost-Developmentx/cashly-frontend-sub000/internal/conversation"
	"github.com/Ghost-Developmentx/cashly-frontend-sub000/internal/logging"
	"github.com/Ghost-Developmentx/cashly-frontend-sub000/internal/types"
)

const (
	minContentHeight = 6
	inputCharLimit   = 2000
)

type uiMode int

const (
	uiModeChat uiMode = iota
	uiModeRecents
)

type Options struct {
	Conversations ConversationAPI
	Finance       FinanceAPI
	Recents       RecentsStore
	Orchestrator  *conversation.Orchestrator
	Config        config.Config
	Logger        logging.Logger
	ExportDir     string
}

type Model struct {
	convAPI ConversationAPI
	finAPI  FinanceAPI
	recents RecentsStore
	orc     *conversation.Orchestrator
	cfg     config.Config
	log     logging.Logger

	viewport viewport.Model
	input    textinput.Model
	loader   spinner.Model

	mode           uiMode
	width          int
	height         int
	ready          bool
	status         string
	conversationID string
	exportDir      string

	recentList  []*types.Conversation
	recentIndex int
}

func NewModel(opts Options) *Model {
	if opts.Orchestrator == nil {
		opts.Orchestrator = conversation.New(opts.Logger)
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	input := textinput.New()
	input.Placeholder = "Ask Cashly anything about your finances…"
	input.CharLimit = inputCharLimit
	input.Focus()

	loader := spinner.New()
	loader.Spinner = spinner.MiniDot

	return &Model{
		convAPI:   opts.Conversations,
		finAPI:    opts.Finance,
		recents:   opts.Recents,
		orc:       opts.Orchestrator,
		cfg:       opts.Config,
		log:       opts.Logger,
		input:     input,
		loader:    loader,
		exportDir: opts.ExportDir,
	}
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.refreshViewport()
		return m, nil

	case spinner.TickMsg:
		if !m.orc.State().Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.loader, cmd = m.loader.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.updateKey(msg)

	case queryReplyMsg:
		return m.applyQueryReply(msg)

	case conversationsMsg:
		return m.applyConversations(msg)

	case conversationLoadedMsg:
		return m.applyConversationLoaded(msg)

	case conversationsClearedMsg:
		if msg.err != nil {
			m.status = "failed to clear conversations: " + msg.err.Error()
			return m, nil
		}
		m.status = "conversation history cleared"
		return m, nil

	case accountDisconnectedMsg:
		if msg.err != nil {
			m.appendLocalAssistant("I couldn't disconnect that account: " + msg.err.Error())
		} else {
			m.appendLocalAssistant("Your bank account has been disconnected.")
		}
		m.refreshViewport()
		return m, nil

	case transactionMutatedMsg:
		return m.applyTransactionMutation(msg)

	case invoiceSentMsg:
		return m.applyInvoiceSent(msg)

	case stripeLinkMsg:
		if msg.err != nil {
			m.status = "payment link unavailable: " + msg.err.Error()
			return m, nil
		}
		if err := actions.OpenBrowser(msg.url); err != nil {
			m.status = "could not open browser: " + err.Error()
			return m, nil
		}
		m.status = "opened " + msg.kind + " link in browser"
		return m, nil

	case stripeSetupMsg:
		if msg.err != nil {
			m.appendLocalAssistant("Payment setup failed: " + msg.err.Error())
		} else {
			m.orc.State().StripeConnectStatus = msg.status
			m.status = "payment setup updated"
		}
		m.refreshViewport()
		return m, nil

	case forecastExportedMsg:
		if msg.err != nil {
			m.status = "export failed: " + msg.err.Error()
		} else {
			m.status = "forecast exported to " + msg.path
		}
		return m, nil

	case recentsSavedMsg:
		if msg.err != nil {
			m.log.Warn("recents cache write failed", logging.F("error", msg.err.Error()))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode == uiModeRecents {
		return m.updateRecentsKey(msg)
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "enter":
		return m.submitInput()
	case "ctrl+n":
		m.orc.Clear()
		m.conversationID = ""
		m.status = "new conversation started"
		m.refreshViewport()
		return m, nil
	case "ctrl+r":
		m.mode = uiModeRecents
		m.recentIndex = 0
		m.status = "loading conversations…"
		return m, fetchConversationsCmd(m.convAPI)
	case "ctrl+e":
		return m.exportForecast()
	case "ctrl+y":
		return m.copyPaymentLink()
	case "ctrl+s":
		return m.sendInvoicePreview()
	case "ctrl+p":
		m.status = "fetching payment onboarding link…"
		return m, stripeOnboardingLinkCmd(m.finAPI)
	case "pgup", "pgdown", "up", "down":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateRecentsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+r":
		m.mode = uiModeChat
		m.status = ""
		return m, nil
	case "up", "k":
		if m.recentIndex > 0 {
			m.recentIndex--
		}
		return m, nil
	case "down", "j":
		if m.recentIndex < len(m.recentList)-1 {
			m.recentIndex++
		}
		return m, nil
	case "enter":
		if m.recentIndex < 0 || m.recentIndex >= len(m.recentList) {
			return m, nil
		}
		picked := m.recentList[m.recentIndex]
		m.mode = uiModeChat
		m.status = "loading conversation…"
		return m, fetchConversationCmd(m.convAPI, picked.ID)
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

// submitInput sends the composed text as a conversation turn, or runs a
// slash command for the direct (non-conversational) backend operations.
func (m *Model) submitInput() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		m.status = "message is required"
		return m, nil
	}
	if strings.HasPrefix(text, "/") {
		m.input.SetValue("")
		return m.runSlashCommand(text)
	}
	if m.orc.State().Loading {
		m.status = "still waiting on the previous reply"
		return m, nil
	}
	m.input.SetValue("")
	m.status = ""
	_, generation := m.orc.BeginTurn(text)
	m.refreshViewport()
	return m, tea.Batch(
		m.loader.Tick,
		queryConversationCmd(m.convAPI, generation, text, m.orc.History()),
	)
}

func (m *Model) runSlashCommand(text string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(text)
	switch fields[0] {
	case "/new":
		m.orc.Clear()
		m.conversationID = ""
		m.status = "new conversation started"
		m.refreshViewport()
		return m, nil
	case "/recents":
		m.mode = uiModeRecents
		m.recentIndex = 0
		return m, fetchConversationsCmd(m.convAPI)
	case "/clear-history":
		return m, clearConversationsCmd(m.convAPI)
	case "/disconnect":
		if len(fields) < 2 {
			m.status = "usage: /disconnect <account-id>"
			return m, nil
		}
		return m, disconnectAccountCmd(m.finAPI, fields[1])
	case "/delete-txn":
		if len(fields) < 2 {
			m.status = "usage: /delete-txn <transaction-id>"
			return m, nil
		}
		return m, deleteTransactionCmd(m.finAPI, fields[1])
	case "/recategorize":
		if len(fields) < 3 {
			m.status = "usage: /recategorize <transaction-id> <category>"
			return m, nil
		}
		req := client.TransactionRequest{Category: strings.Join(fields[2:], " ")}
		return m, updateTransactionCmd(m.finAPI, fields[1], req)
	case "/add-txn":
		if len(fields) < 3 {
			m.status = "usage: /add-txn <amount> <description>"
			return m, nil
		}
		amount, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			m.status = "amount must be a number"
			return m, nil
		}
		req := client.TransactionRequest{
			Amount:      amount,
			Description: strings.Join(fields[2:], " "),
			Date:        time.Now().Format("2006-01-02"),
		}
		return m, createTransactionCmd(m.finAPI, req)
	case "/send-invoice":
		return m.sendInvoicePreview()
	case "/setup-payments":
		m.status = "setting up payments…"
		return m, setupStripeConnectCmd(m.finAPI)
	case "/export":
		return m.exportForecast()
	case "/dashboard":
		m.status = "fetching dashboard link…"
		return m, stripeDashboardLinkCmd(m.finAPI)
	default:
		m.status = "unknown command " + fields[0]
		return m, nil
	}
}

func (m *Model) applyQueryReply(msg queryReplyMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.orc.FailTurn(msg.generation, msg.err)
		m.refreshViewport()
		return m, nil
	}
	applied := m.orc.ApplyReply(msg.generation, msg.reply)
	m.log.Debug("reply applied",
		logging.F("actions", len(msg.reply.Actions)),
		logging.F("applied", applied))
	m.status = ""
	m.refreshViewport()
	return m, saveRecentCmd(m.recents, m.currentConversation())
}

func (m *Model) applyConversations(msg conversationsMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		// Backend unreachable: fall back to the local cache so the
		// picker still opens.
		m.log.Warn("conversation list fetch failed", logging.F("error", msg.err.Error()))
		if m.recents != nil {
			if cached, cacheErr := listRecents(m.recents); cacheErr == nil {
				m.recentList = cached
				m.status = "offline: showing cached conversations"
				return m, nil
			}
		}
		m.mode = uiModeChat
		m.status = "could not load conversations"
		return m, nil
	}
	m.recentList = msg.conversations
	m.status = ""
	return m, nil
}

func (m *Model) applyConversationLoaded(msg conversationLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil || msg.conversation == nil {
		m.status = "could not load conversation"
		return m, nil
	}
	m.orc.LoadTranscript(msg.conversation.Messages)
	m.conversationID = msg.conversation.ID
	m.status = ""
	m.refreshViewport()
	return m, saveRecentCmd(m.recents, m.currentConversation())
}

func (m *Model) applyTransactionMutation(msg transactionMutatedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.appendLocalAssistant(fmt.Sprintf("Transaction %s failed: %s", msg.op, msg.err.Error()))
		m.refreshViewport()
		return m, nil
	}
	if msg.op == "delete" {
		m.removeLocalTransaction(msg.id)
	}
	m.appendLocalAssistant("Transaction " + msg.op + "d.")
	m.refreshViewport()
	return m, nil
}

// removeLocalTransaction applies the optimistic local edit after a direct
// delete: drop the row and recompute the summary without waiting for the
// next show_transactions push.
func (m *Model) removeLocalTransaction(id string) {
	state := m.orc.State()
	if state.Transactions == nil {
		return
	}
	kept := state.Transactions.Transactions[:0]
	for _, txn := range state.Transactions.Transactions {
		if txn != nil && txn.ID == id {
			continue
		}
		kept = append(kept, txn)
	}
	state.Transactions.Transactions = kept
	state.Transactions.Summarize()
}

func (m *Model) applyInvoiceSent(msg invoiceSentMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.appendLocalAssistant("I couldn't send that invoice: " + msg.err.Error())
		m.refreshViewport()
		return m, nil
	}
	// Reuse the invoice_send_success reducer so the preview, list patch and
	// payment banner stay consistent with the conversational path.
	action, err := sendSuccessAction(msg)
	if err != nil {
		m.log.Error("building invoice action failed", logging.F("error", err.Error()))
		return m, nil
	}
	m.orc.Dispatcher().Dispatch(action, m.orc.State(), func(content string) {
		m.appendLocalAssistant(content)
	})
	m.appendLocalAssistant("Invoice sent to " + msg.invoice.ClientName + ".")
	m.refreshViewport()
	return m, nil
}

func (m *Model) sendInvoicePreview() (tea.Model, tea.Cmd) {
	preview := m.orc.State().InvoicePreview
	if preview == nil {
		m.status = "no invoice draft to send"
		return m, nil
	}
	m.status = "sending invoice…"
	return m, sendInvoiceCmd(m.finAPI, preview.ID)
}

func (m *Model) exportForecast() (tea.Model, tea.Cmd) {
	if m.orc.Forecast().Current() == nil {
		m.status = "no forecast to export"
		return m, nil
	}
	return m, exportForecastCmd(m.orc.Forecast(), m.exportDir)
}

func (m *Model) copyPaymentLink() (tea.Model, tea.Cmd) {
	link := m.orc.State().PaymentLink
	if link == nil {
		m.status = "no payment link to copy"
		return m, nil
	}
	if err := copyTextToClipboard(link.URL); err != nil {
		m.status = "copy failed: " + err.Error()
		return m, nil
	}
	m.status = "payment link copied"
	return m, nil
}

func (m *Model) appendLocalAssistant(content string) {
	m.orc.State().AppendMessage(&types.Message{
		ID:      "local-" + fmt.Sprint(len(m.orc.State().Messages)),
		Role:    types.MessageRoleAssistant,
		Content: content,
	})
}

func (m *Model) currentConversation() *types.Conversation {
	if m.conversationID == "" {
		return nil
	}
	title := ""
	for _, msg := range m.orc.State().Messages {
		if msg != nil && msg.Role == types.MessageRoleUser {
			title = msg.Content
			break
		}
	}
	return &types.Conversation{ID: m.conversationID, Title: title}
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	contentHeight := height - 4
	if contentHeight < minContentHeight {
		contentHeight = minContentHeight
	}
	if !m.ready {
		m.viewport = viewport.New(width, contentHeight)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = contentHeight
	}
	m.input.Width = width - 4
}

func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	width := m.viewport.Width
	content := renderMarkdown(transcriptMarkdown(m.orc.State().Messages), width)
	if surfaces := renderSurfaces(m.orc.State(), width); surfaces != "" {
		content = content + "\n\n" + surfaces
	}
	m.viewport.SetContent(content)
	m.viewport.GotoBottom()
}

func transcriptMarkdown(messages []*types.Message) string {
	var b strings.Builder
	for _, msg := range messages {
		if msg == nil || strings.TrimSpace(msg.Content) == "" {
			continue
		}
		if msg.Role == types.MessageRoleUser {
			b.WriteString("### You\n\n")
		} else {
			b.WriteString("### Cashly\n\n")
		}
		b.WriteString(msg.Content)
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

var (
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStatusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	promptStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
)

func (m *Model) View() string {
	if !m.ready {
		return "starting…"
	}
	if m.mode == uiModeRecents {
		return m.viewRecents()
	}

	var b strings.Builder
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.viewStatusLine())
	b.WriteString("\n")
	b.WriteString(promptStyle.Render("> ") + m.input.View())
	return b.String()
}

func (m *Model) viewStatusLine() string {
	state := m.orc.State()
	if state.Loading {
		return statusStyle.Render(m.loader.View() + " thinking…")
	}
	if state.Error != "" {
		return errStatusStyle.Render(state.Error)
	}
	if m.status != "" {
		return statusStyle.Render(m.status)
	}
	return statusStyle.Render("enter to send · ctrl+n new · ctrl+r history · ctrl+c quit")
}

func (m *Model) viewRecents() string {
	var b strings.Builder
	b.WriteString(promptStyle.Render("Conversations") + "\n\n")
	if len(m.recentList) == 0 {
		b.WriteString(statusStyle.Render("no conversations yet") + "\n")
	}
	for i, conv := range m.recentList {
		title := conv.Title
		if title == "" {
			title = conv.ID
		}
		cursor := "  "
		if i == m.recentIndex {
			cursor = promptStyle.Render("> ")
		}
		b.WriteString(cursor + title + "\n")
	}
	b.WriteString("\n" + statusStyle.Render("enter to open · esc to cancel"))
	if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.status))
	}
	return b.String()
}
