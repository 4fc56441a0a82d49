package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mamadbah2/shipment-tracker/internal/barcode"
	"github.com/mamadbah2/shipment-tracker/internal/tracking"
)

func newBarcodeCmd(a *app) *cobra.Command {
	var (
		asPNG bool
		asPDF bool
		out   string
	)

	cmd := &cobra.Command{
		Use:   "barcode TRACKER_ID",
		Short: "Render the barcode of a tracker id",
		Long:  "Print the Code128 barcode of a tracker id and optionally save it as <id>.png and <id>.pdf.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			trackerID := args[0]
			if !tracking.Valid(trackerID) {
				a.logger.Warn("tracker id does not use the generated format", zap.String("tracker_id", trackerID))
			}

			sym, err := barcode.NewCode128Renderer().Render(trackerID)
			if err != nil {
				a.logger.Error("could not render barcode", zap.Error(err))
				return fmt.Errorf("rendering barcode: %w", err)
			}

			w := cmd.OutOrStdout()
			bars := sym.Blocks()
			for i := 0; i < 3; i++ {
				fmt.Fprintln(w, bars)
			}
			fmt.Fprintln(w, sym.TrackerID)

			exporter := barcode.NewExporter(a.logger)
			dir := a.outputDir(out)
			if asPNG {
				path, err := exporter.ExportImage(dir, sym)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "saved %s\n", path)
			}
			if asPDF {
				path, err := exporter.ExportDocument(dir, sym)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "saved %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asPNG, "png", false, "Save the barcode as <id>.png")
	cmd.Flags().BoolVar(&asPDF, "pdf", false, "Save the barcode as <id>.pdf")
	cmd.Flags().StringVar(&out, "out", "", "Directory for exports (overrides SHIPCTL_OUTPUT_DIR)")

	return cmd
}
