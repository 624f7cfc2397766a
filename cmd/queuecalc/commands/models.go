package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"queuecalc/internal/queueing"

	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:         "models",
	Short:       "List the supported models",
	Annotations: map[string]string{quietAnnotation: ""},
	RunE: func(cmd *cobra.Command, args []string) error {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "MODEL\tNAME\tPARAMETERS\tQUERIES")
		for _, m := range queueing.Models() {
			queries := strings.Join(m.Queries, ",")
			if queries == "" {
				queries = "-"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", m.Model, m.Name, strings.Join(m.Parameters, ","), queries)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
