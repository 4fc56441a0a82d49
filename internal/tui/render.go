package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mamadbah2/shipment-tracker/internal/barcode"
	"github.com/mamadbah2/shipment-tracker/internal/domain/models"
	"github.com/mamadbah2/shipment-tracker/internal/wizard"
)

// RenderSteps draws the progress sidebar. Steps up to current are highlighted.
func RenderSteps(current wizard.Step) string {
	lines := make([]string, 0, len(wizard.Steps)*2)
	for i, step := range wizard.Steps {
		style := pendingStepStyle
		dot := "○"
		if step <= current {
			style = doneStepStyle
			dot = "●"
		}
		lines = append(lines, style.Render(dot+" "+step.String()))

		if i < len(wizard.Steps)-1 {
			connector := pendingStepStyle
			if step < current {
				connector = doneStepStyle
			}
			lines = append(lines, connector.Render("│"))
		}
	}
	return sidebarStyle.Render(strings.Join(lines, "\n"))
}

// OrderLines formats one shipment as the two lines shown in the orders list.
func OrderLines(r models.ShipmentRecord) (primary, secondary string) {
	primary = fmt.Sprintf("Sender: %s, Receiver: %s", r.Sender.Name, r.Receiver.Name)
	secondary = fmt.Sprintf("Shipment Details: %s, Tracker ID: %s", r.ShipmentDetails, r.TrackerID)
	return primary, secondary
}

// RenderOrders draws the read-only shipment list.
func RenderOrders(records []models.ShipmentRecord) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Shipment Orders"))
	b.WriteString("\n")

	if len(records) == 0 {
		b.WriteString(labelStyle.Render("No shipments yet."))
		return panelStyle.Render(b.String())
	}

	for i, r := range records {
		primary, secondary := OrderLines(r)
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(primary)
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(secondary))
	}
	return panelStyle.Render(b.String())
}

// RenderReview draws the review panel with every field and, when generated,
// the barcode with its value underneath.
func RenderReview(req models.SubmitRequest, sym *barcode.Symbol) string {
	lines := []string{
		headingStyle.Render("Review and Generate Barcode"),
		"Sender Name: " + req.Sender.Name,
		"Sender Address: " + req.Sender.Address,
		"Receiver Name: " + req.Receiver.Name,
		"Receiver Address: " + req.Receiver.Address,
		"Shipment Details: " + req.ShipmentDetails,
		"Tracker ID: " + req.TrackerID,
	}

	if sym != nil {
		bars := sym.Blocks()
		for i := 0; i < 4; i++ {
			if i == 0 {
				lines = append(lines, "")
			}
			lines = append(lines, bars)
		}
		lines = append(lines, lipgloss.PlaceHorizontal(lipgloss.Width(bars), lipgloss.Center, sym.TrackerID))
	}

	return panelStyle.Render(strings.Join(lines, "\n"))
}

// RenderOrderTable draws the shipments as a bordered table for the CLI.
func RenderOrderTable(records []models.ShipmentRecord) string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{r.TrackerID, r.Sender.Name, r.Receiver.Name, r.ShipmentDetails})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(dim)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers("TRACKER ID", "SENDER", "RECEIVER", "DETAILS").
		Rows(rows...)

	return t.String() + "\n"
}
