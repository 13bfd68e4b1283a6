package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/verdigris-botanica/sovereign-relay/internal/dashboard"
	"github.com/verdigris-botanica/sovereign-relay/internal/relay"
	"github.com/verdigris-botanica/sovereign-relay/internal/report"
)

var dashboardDir string
var dashboardDetailed bool

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Render the receiving agency's view of the transmitted assessments",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := dashboard.RenderMagnitude(os.Stdout, report.TransmissionLogPath(dashboardDir)); err != nil {
			return err
		}
		if dashboardDetailed {
			return dashboard.RenderAuditTrail(os.Stdout, report.AuditExportPath(dashboardDir))
		}
		return nil
	},
}

func init() {
	dashboardCmd.Flags().StringVarP(&dashboardDir, "output-dir", "o", relay.DefaultOutputDir, "Directory holding the run artifacts")
	dashboardCmd.Flags().BoolVar(&dashboardDetailed, "detailed", false, "Also print the complete audit trail")
	rootCmd.AddCommand(dashboardCmd)
}
