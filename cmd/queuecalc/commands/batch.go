package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"queuecalc/internal/queueing"
	"queuecalc/internal/scenario"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var batchFlags struct {
	workers int
	output  string
}

// scenarioOutcome pairs a batch outcome with its scenario name for output.
type scenarioOutcome struct {
	Name             string `json:"name" yaml:"name"`
	queueing.Outcome `yaml:",inline"`
}

var batchCmd = &cobra.Command{
	Use:   "batch <scenarios.yaml>",
	Short: "Solve every scenario in a YAML file concurrently",
	Long: `Reads named scenarios from a YAML file and solves them on a bounded worker pool.
Each scenario fails independently; the command exits non-zero if any did.`,
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{quietAnnotation: ""},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkFormat(batchFlags.output); err != nil {
			return err
		}

		scenarios, err := scenario.Load(args[0])
		if err != nil {
			return err
		}

		workers := cfg.BatchWorkers
		if batchFlags.workers > 0 {
			workers = batchFlags.workers
		}
		log.Debug().Int("scenarios", len(scenarios)).Int("workers", workers).Msg("Solving batch")

		outcomes, err := engine.SolveBatch(cmd.Context(), scenario.Requests(scenarios), workers)
		if err != nil {
			return err
		}

		named := make([]scenarioOutcome, len(outcomes))
		failed := 0
		for i, o := range outcomes {
			named[i] = scenarioOutcome{Name: scenarios[i].Name, Outcome: o}
			if o.Error != nil {
				failed++
			}
		}

		if batchFlags.output == formatTable {
			err = writeBatchTable(cmd.OutOrStdout(), named)
		} else {
			err = encode(cmd.OutOrStdout(), batchFlags.output, named)
		}
		if err != nil {
			return err
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d scenarios failed", failed, len(outcomes))
		}
		return nil
	},
}

func writeBatchTable(w io.Writer, rows []scenarioOutcome) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SCENARIO\tMODEL\tRHO\tL\tLq\tW\tWq\tERROR")
	for _, row := range rows {
		if row.Error != nil {
			fmt.Fprintf(tw, "%s\t%s\t-\t-\t-\t-\t-\t%s\n", row.Name, row.Model, row.Error.Error())
			continue
		}
		r := row.Result
		fmt.Fprintf(tw, "%s\t%s\t%.6g\t%.6g\t%.6g\t%.6g\t%.6g\t\n", row.Name, r.Model, r.Rho, r.L, r.Lq, r.W, r.Wq)
	}
	return tw.Flush()
}

func init() {
	batchCmd.Flags().IntVarP(&batchFlags.workers, "workers", "w", 0, "worker goroutines (default QUEUECALC_BATCH_WORKERS)")
	batchCmd.Flags().StringVarP(&batchFlags.output, "output", "o", formatTable, "output format: table, json or yaml")
	rootCmd.AddCommand(batchCmd)
}
