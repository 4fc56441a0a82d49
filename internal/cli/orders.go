package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/mamadbah2/shipment-tracker/internal/domain/models"
	"github.com/mamadbah2/shipment-tracker/internal/tui"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

// orderDocument is the YAML shape of one record.
type orderDocument struct {
	ID                   string `yaml:"_id"`
	models.SubmitRequest `yaml:",inline"`
}

func newOrdersCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List every registered shipment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case formatTable, formatJSON, formatYAML:
			default:
				return fmt.Errorf("unknown format %q (valid: table, json, yaml)", format)
			}

			records, err := a.client().List(cmd.Context())
			if err != nil {
				a.logger.Error("failed to fetch shipments", zap.Error(err))
				return fmt.Errorf("fetching shipments: %w", err)
			}

			switch format {
			case formatJSON:
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			case formatYAML:
				return renderYAML(cmd, records)
			default:
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderOrderTable(records))
				return nil
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "Output format: table, json or yaml")

	return cmd
}

func renderYAML(cmd *cobra.Command, records []models.ShipmentRecord) error {
	docs := make([]orderDocument, 0, len(records))
	for _, r := range records {
		docs = append(docs, orderDocument{
			ID: r.ID.Hex(),
			SubmitRequest: models.SubmitRequest{
				Sender:          r.Sender,
				Receiver:        r.Receiver,
				ShipmentDetails: r.ShipmentDetails,
				TrackerID:       r.TrackerID,
			},
		})
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(docs); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}
