package main

import (
	"github.com/spf13/cobra"
	"github.com/verdigris-botanica/sovereign-relay/internal/config"
	"github.com/verdigris-botanica/sovereign-relay/internal/logging"
	"github.com/verdigris-botanica/sovereign-relay/internal/server"
)

var serveAddr string
var serveRatesURL string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the status endpoint and the Treasury rates proxy",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if serveAddr != "" {
			cfg.ListenAddr = serveAddr
		}
		if serveRatesURL != "" {
			cfg.RatesURL = serveRatesURL
		}

		log, err := logging.New(verbose)
		if err != nil {
			return err
		}
		defer log.Sync()

		srv := server.New(server.Config{RatesURL: cfg.RatesURL, Logger: log})
		return srv.Listen(cfg.ListenAddr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default :5000)")
	serveCmd.Flags().StringVar(&serveRatesURL, "rates-url", "", "Override the Treasury rates endpoint")
	rootCmd.AddCommand(serveCmd)
}
