package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/mamadbah2/shipment-tracker/internal/barcode"
	"github.com/mamadbah2/shipment-tracker/internal/domain/models"
	"github.com/mamadbah2/shipment-tracker/internal/wizard"
	"github.com/mamadbah2/shipment-tracker/pkg/clients/shipments"
)

const (
	NoticeSubmitted    = "Data submitted successfully!"
	NoticeSubmitFailed = "Failed to submit data"
)

type view int

const (
	viewForm view = iota
	viewOrders
	viewNotice
)

type submittedMsg struct {
	message string
	err     error
}

type ordersMsg struct {
	records []models.ShipmentRecord
	err     error
}

type exportedMsg struct {
	path string
	err  error
}

// Config wires the model's collaborators.
type Config struct {
	Wizard    *wizard.Wizard
	API       shipments.Client
	Renderer  barcode.Renderer
	Exporter  *barcode.Exporter
	OutputDir string
	Logger    *zap.Logger
}

// Model is the bubbletea model for one wizard session.
type Model struct {
	wiz       *wizard.Wizard
	api       shipments.Client
	renderer  barcode.Renderer
	exporter  *barcode.Exporter
	outputDir string
	logger    *zap.Logger

	inputs []textinput.Model
	fields []wizard.Field
	focus  int

	view       view
	orders     []models.ShipmentRecord
	symbol     *barcode.Symbol
	notice     string
	noticeErr  bool
	status     string
	submitting bool
}

// New builds a model positioned at the wizard's current step.
func New(cfg Config) Model {
	if cfg.Wizard == nil {
		cfg.Wizard = wizard.New()
	}
	if cfg.Renderer == nil {
		cfg.Renderer = barcode.NewCode128Renderer()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Exporter == nil {
		cfg.Exporter = barcode.NewExporter(cfg.Logger)
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}

	m := Model{
		wiz:       cfg.Wizard,
		api:       cfg.API,
		renderer:  cfg.Renderer,
		exporter:  cfg.Exporter,
		outputDir: cfg.OutputDir,
		logger:    cfg.Logger,
	}
	m.loadInputs()
	return m
}

// Wizard exposes the session driven by the model.
func (m Model) Wizard() *wizard.Wizard { return m.wiz }

// Symbol returns the barcode generated on the review panel, if any.
func (m Model) Symbol() *barcode.Symbol { return m.symbol }

// Notice returns the blocking notification currently shown.
func (m Model) Notice() string { return m.notice }

// ShowingOrders reports whether the orders view is open.
func (m Model) ShowingOrders() bool { return m.view == viewOrders }

// Init starts the cursor blink of the focused input.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses and the results of background commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case submittedMsg:
		m.submitting = false
		m.view = viewNotice
		if msg.err != nil {
			m.logger.Error("failed to submit shipment", zap.Error(msg.err))
			m.notice = NoticeSubmitFailed
			m.noticeErr = true
			return m, nil
		}
		m.logger.Info("shipment submitted", zap.String("tracker_id", m.wiz.TrackerID()), zap.String("message", msg.message))
		m.notice = NoticeSubmitted
		m.noticeErr = false
		return m, nil

	case ordersMsg:
		if msg.err != nil {
			m.logger.Error("failed to fetch shipments", zap.Error(msg.err))
			return m, nil
		}
		m.orders = msg.records
		m.view = viewOrders
		return m, nil

	case exportedMsg:
		if msg.err == nil {
			m.status = "Saved " + msg.path
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocused(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	// The wizard stays frozen until the submit result arrives.
	if m.submitting {
		return m, nil
	}

	switch m.view {
	case viewNotice:
		if key == "esc" || key == "enter" {
			m.view = viewForm
			m.notice = ""
		}
		return m, nil
	case viewOrders:
		if key == "esc" || key == "q" {
			m.view = viewForm
		}
		return m, nil
	}

	switch key {
	case "ctrl+o":
		return m, m.fetchOrders()
	case "ctrl+n":
		return m.next()
	case "ctrl+b":
		return m.back()
	case "tab", "down":
		m.moveFocus(1)
		return m, nil
	case "shift+tab", "up":
		m.moveFocus(-1)
		return m, nil
	case "enter":
		if len(m.inputs) > 0 && m.focus < len(m.inputs)-1 {
			m.moveFocus(1)
			return m, nil
		}
		if m.wiz.CanSubmit() {
			return m.submit()
		}
		return m.next()
	}

	if m.wiz.Step() == wizard.StepTrackerID {
		switch key {
		case "s":
			return m.submit()
		case "g":
			m.generateBarcode()
			return m, nil
		case "p":
			return m, m.export(barcode.ExtPNG)
		case "d":
			return m, m.export(barcode.ExtPDF)
		case "q":
			return m, tea.Quit
		}
		return m, nil
	}

	return m.updateFocused(msg)
}

func (m Model) next() (tea.Model, tea.Cmd) {
	if err := m.wiz.Next(); err != nil {
		// Hints for the step are already shown under the fields.
		return m, nil
	}
	m.status = ""
	return m, m.loadInputs()
}

func (m Model) back() (tea.Model, tea.Cmd) {
	if !m.wiz.CanBack() {
		return m, nil
	}
	m.wiz.Back()
	m.status = ""
	return m, m.loadInputs()
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.submitting || !m.wiz.CanSubmit() || m.api == nil {
		return m, nil
	}

	req, err := m.wiz.Ready()
	if err != nil {
		m.logger.Error("failed to submit shipment", zap.Error(err))
		m.view = viewNotice
		m.notice = NoticeSubmitFailed
		m.noticeErr = true
		return m, nil
	}
	m.submitting = true

	api := m.api
	return m, func() tea.Msg {
		message, err := wizard.Send(context.Background(), api, req)
		return submittedMsg{message: message, err: err}
	}
}

func (m Model) fetchOrders() tea.Cmd {
	if m.api == nil {
		return nil
	}
	api := m.api
	return func() tea.Msg {
		records, err := api.List(context.Background())
		return ordersMsg{records: records, err: err}
	}
}

func (m *Model) generateBarcode() {
	sym, err := m.renderer.Render(m.wiz.TrackerID())
	if err != nil {
		m.logger.Error("could not render barcode", zap.Error(err))
		return
	}
	m.symbol = sym
}

func (m Model) export(ext string) tea.Cmd {
	exporter, dir, sym := m.exporter, m.outputDir, m.symbol
	return func() tea.Msg {
		var (
			path string
			err  error
		)
		if ext == barcode.ExtPDF {
			path, err = exporter.ExportDocument(dir, sym)
		} else {
			path, err = exporter.ExportImage(dir, sym)
		}
		return exportedMsg{path: path, err: err}
	}
}

// loadInputs rebuilds the text inputs for the current step from the drafts.
func (m *Model) loadInputs() tea.Cmd {
	m.fields = wizard.Fields(m.wiz.Step())
	m.inputs = make([]textinput.Model, len(m.fields))
	m.focus = 0

	for i, f := range m.fields {
		ti := textinput.New()
		ti.Placeholder = f.Label()
		ti.Prompt = ""
		ti.Width = 40
		ti.SetValue(m.wiz.Value(f))
		m.inputs[i] = ti
	}
	if len(m.inputs) == 0 {
		return nil
	}
	return m.inputs[0].Focus()
}

func (m *Model) moveFocus(delta int) {
	if len(m.inputs) == 0 {
		return
	}
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

// updateFocused forwards msg to the focused input and copies its value into
// the wizard draft.
func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	if len(m.inputs) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	m.wiz.Set(m.fields[m.focus], m.inputs[m.focus].Value())
	return m, cmd
}

// View renders the current screen.
func (m Model) View() string {
	title := titleBarStyle.Render("Shipment Tracker")
	if m.wiz.Strict() {
		title = lipgloss.JoinHorizontal(lipgloss.Top, title, labelStyle.Render("  strict validation"))
	}

	switch m.view {
	case viewOrders:
		return lipgloss.JoinVertical(lipgloss.Left, title, "", RenderOrders(m.orders), helpStyle.Render("esc close"))
	case viewNotice:
		style := noticeStyle.BorderForeground(success)
		if m.noticeErr {
			style = noticeStyle.BorderForeground(danger)
		}
		return lipgloss.JoinVertical(lipgloss.Left, title, "", style.Render(m.notice), helpStyle.Render("enter dismiss"))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.formView(), RenderSteps(m.wiz.Step()))
	parts := []string{title, "", body}
	if m.status != "" {
		parts = append(parts, statusStyle.Render(m.status))
	}
	parts = append(parts, helpStyle.Render(m.helpLine()))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) formView() string {
	step := m.wiz.Step()
	var b strings.Builder
	b.WriteString(headingStyle.Render(stepTitle(step)))
	b.WriteString("\n")

	if step == wizard.StepTrackerID {
		b.WriteString(labelStyle.Render("Tracker ID"))
		b.WriteString("\n")
		b.WriteString(m.wiz.TrackerID())
		b.WriteString("\n\n")
		b.WriteString(RenderReview(m.wiz.Payload(), m.symbol))
		return b.String()
	}

	hints := make(map[wizard.Field]string)
	for _, h := range m.wiz.Hints(step) {
		hints[h.Field] = h.Message
	}

	for i, f := range m.fields {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(labelStyle.Render(f.Label()))
		b.WriteString("\n")
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
		if msg, ok := hints[f]; ok {
			b.WriteString(hintStyle.Render(msg))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) helpLine() string {
	if m.wiz.Step() == wizard.StepTrackerID {
		return "s submit • g barcode • p png • d pdf • ctrl+b back • ctrl+o orders • q quit"
	}
	keys := []string{"tab field", "enter next"}
	if m.wiz.CanBack() {
		keys = append(keys, "ctrl+b back")
	}
	keys = append(keys, "ctrl+o orders", "ctrl+c quit")
	return strings.Join(keys, " • ")
}

func stepTitle(step wizard.Step) string {
	switch step {
	case wizard.StepSender:
		return "Sender Information"
	case wizard.StepReceiver:
		return "Receiver Information"
	case wizard.StepShipment:
		return "Shipment Details"
	case wizard.StepTrackerID:
		return "Tracker ID"
	}
	return fmt.Sprintf("Step %d", int(step))
}
