package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"queuecalc/internal/config"
	"queuecalc/internal/logging"
	"queuecalc/internal/mcp"
	"queuecalc/internal/queueing"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig
	engine  *queueing.Engine
)

// quietAnnotation marks commands whose stdout is the product; console logging
// is limited to warnings for them.
const quietAnnotation = "quiet"

var rootCmd = &cobra.Command{
	Use:   "queuecalc",
	Short: "queuecalc solves classical queueing models analytically",
	Long: `A queueing-theory engine for M/M/1, M/M/s, finite capacity (M/M/s/K), finite population (M/M/s/N),
M/G/1 and priority queues. Without a subcommand it runs as an MCP server over stdio.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_, quiet := cmd.Annotations[quietAnnotation]
		if _, err := logging.Init(logging.Options{Verbose: verbose, Quiet: quiet}); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize logging")
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		engine = queueing.NewEngine(queueing.Options{MaxStates: cfg.MaxStates})

		log.Debug().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("queuecalc starting")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMCP(cmd.Context())
	},
}

func runMCP(ctx context.Context) error {
	return mcp.NewServer(engine, Version).Run(ctx)
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func Execute() error {
	ctx, cancel := signalContext(context.Background())
	defer cancel()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.Version = Version
}
