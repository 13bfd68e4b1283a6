package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/verdigris-botanica/sovereign-relay/internal/config"
	"github.com/verdigris-botanica/sovereign-relay/internal/logging"
	"github.com/verdigris-botanica/sovereign-relay/internal/relay"
)

var runOutputDir string
var runEndpoint string
var runSovereignDemo bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the assessments and relay shareable results to the federal intake",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if runOutputDir != "" {
			cfg.OutputDir = runOutputDir
		}
		if runEndpoint != "" {
			cfg.Endpoint = runEndpoint
		}
		if runSovereignDemo {
			cfg.SovereignDemo = true
		}

		log, err := logging.New(verbose)
		if err != nil {
			return err
		}
		defer log.Sync()

		report, err := relay.Run(relay.Config{
			OutputDir:     cfg.OutputDir,
			Endpoint:      cfg.Endpoint,
			Passphrase:    cfg.Passphrase,
			SovereignDemo: cfg.SovereignDemo,
		}, log)
		if err != nil {
			return err
		}

		fmt.Printf("run_id=%s transmissions=%d findings=%d log=%s summary=%s audit=%s checksums=%s\n",
			report.RunID, len(report.Transmissions), report.TotalFindings,
			report.LogFile, report.SummaryFile, report.AuditExportFile, report.ChecksumsFile)
		return nil
	},
}

func init() {
	runCmd.Flags().StringVarP(&runOutputDir, "output-dir", "o", "", "Directory for the transmission log and artifacts (default ./logs)")
	runCmd.Flags().StringVar(&runEndpoint, "endpoint", "", "Override the simulated intake endpoint")
	runCmd.Flags().BoolVar(&runSovereignDemo, "sovereign-demo", false, "Also walk a TRIBAL_SOVEREIGN record into the gate to show the refusal")
	rootCmd.AddCommand(runCmd)
}
