package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mamadbah2/shipment-tracker/internal/config"
	"github.com/mamadbah2/shipment-tracker/pkg/clients/shipments"
	"github.com/mamadbah2/shipment-tracker/pkg/logger"
)

var (
	version = "dev"
	commit  = "none"
)

// app carries what every command needs once flags are parsed.
type app struct {
	apiURL  string
	envFile string

	cfg    *config.Config
	logger *zap.Logger
}

func (a *app) setup() error {
	cfg, err := config.LoadClient(a.envFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if a.apiURL != "" {
		cfg.Client.APIBaseURL = a.apiURL
	}

	log, err := logger.NewFile(cfg.Client.LogFile, cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}

	a.cfg = cfg
	a.logger = log.With(zap.String("api", cfg.Client.APIBaseURL))
	return nil
}

func (a *app) client() *shipments.APIClient {
	return shipments.NewClient(a.cfg.Client.APIBaseURL)
}

func (a *app) outputDir(flag string) string {
	if flag != "" {
		return flag
	}
	return a.cfg.Client.OutputDir
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "shipctl",
		Short: "Register and track shipments",
		Long:  "shipctl walks you through registering a shipment, lists stored shipments and renders tracker barcodes.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&a.apiURL, "api", "", "Shipment API base URL (overrides SHIPMENT_API_URL)")
	cmd.PersistentFlags().StringVar(&a.envFile, "env-file", "", "Path to a .env file")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newWizardCmd(a))
	cmd.AddCommand(newOrdersCmd(a))
	cmd.AddCommand(newBarcodeCmd(a))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

// Execute runs shipctl with the process arguments.
func Execute() error {
	return newRootCmd().Execute()
}
