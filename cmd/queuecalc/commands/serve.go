package commands

import (
	"queuecalc/internal/api"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculator over HTTP",
	Long: `Serves the JSON API under /api (health, models, calculate, batch) and Prometheus metrics
under /metrics. The listen address defaults to QUEUECALC_HTTP_ADDR.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := cfg.HTTPAddr
		if serveAddr != "" {
			addr = serveAddr
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		srv := api.New(engine, api.Options{
			Version:      Version,
			CORSOrigin:   cfg.CORSOrigin,
			BatchWorkers: cfg.BatchWorkers,
			Registry:     reg,
		})
		return srv.Run(cmd.Context(), addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides QUEUECALC_HTTP_ADDR)")
	rootCmd.AddCommand(serveCmd)
}
