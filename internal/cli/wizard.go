package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mamadbah2/shipment-tracker/internal/barcode"
	"github.com/mamadbah2/shipment-tracker/internal/tui"
	"github.com/mamadbah2/shipment-tracker/internal/wizard"
)

func newWizardCmd(a *app) *cobra.Command {
	var (
		strict bool
		out    string
	)

	cmd := &cobra.Command{
		Use:   "wizard",
		Short: "Register a shipment step by step",
		Long:  "Open the interactive form: sender, receiver, shipment details, then the generated tracker id with its barcode.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []wizard.Option
			if strict {
				opts = append(opts, wizard.WithStrictValidation())
			}

			model := tui.New(tui.Config{
				Wizard:    wizard.New(opts...),
				API:       a.client(),
				Renderer:  barcode.NewCode128Renderer(),
				Exporter:  barcode.NewExporter(a.logger),
				OutputDir: a.outputDir(out),
				Logger:    a.logger,
			})

			p := tea.NewProgram(model,
				tea.WithAltScreen(),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("running wizard: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Block Next and Submit while required fields are empty")
	cmd.Flags().StringVar(&out, "out", "", "Directory for barcode exports (overrides SHIPCTL_OUTPUT_DIR)")

	return cmd
}
