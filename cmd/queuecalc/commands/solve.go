package commands

import (
	"queuecalc/internal/queueing"

	"github.com/spf13/cobra"
)

var solveFlags struct {
	model      string
	lambda     float64
	mu         float64
	servers    int
	capacity   int
	population int
	variance   float64
	classes    []float64
	n          int
	r          int
	t          float64
	output     string
}

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve a single queueing model",
	Example: `  queuecalc solve -m mm1 --lambda 3 --mu 4
  queuecalc solve -m mmsk --lambda 30 --mu 20 --servers 2 --capacity 10 --n 3 --t 0.1
  queuecalc solve -m priority-preemptive --mu 5 --classes 1,1 -o json`,
	Annotations: map[string]string{quietAnnotation: ""},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkFormat(solveFlags.output); err != nil {
			return err
		}

		req := solveRequest(cmd)
		res, err := engine.Solve(req)
		if err != nil {
			return err
		}

		if solveFlags.output == formatTable {
			return writeMetricsTable(cmd.OutOrStdout(), res)
		}
		return encode(cmd.OutOrStdout(), solveFlags.output, res)
	},
}

// solveRequest builds the request from flags. Optional inputs are only set
// when the flag was given, so "--n 0" still asks for P0.
func solveRequest(cmd *cobra.Command) queueing.Request {
	f := cmd.Flags()
	p := queueing.Parameters{
		Lambda:            solveFlags.lambda,
		Mu:                solveFlags.mu,
		Servers:           solveFlags.servers,
		Capacity:          solveFlags.capacity,
		Population:        solveFlags.population,
		ClassArrivalRates: solveFlags.classes,
	}
	if f.Changed("variance") {
		v := solveFlags.variance
		p.ServiceVariance = &v
	}
	if f.Changed("n") {
		n := solveFlags.n
		p.PointCount = &n
	}
	if f.Changed("r") {
		r := solveFlags.r
		p.TailThreshold = &r
	}
	if f.Changed("t") {
		t := solveFlags.t
		p.TimeThreshold = &t
	}
	return queueing.Request{Model: queueing.Model(solveFlags.model), Parameters: p}
}

func init() {
	f := solveCmd.Flags()
	f.StringVarP(&solveFlags.model, "model", "m", "", "model tag (see 'queuecalc models')")
	f.Float64Var(&solveFlags.lambda, "lambda", 0, "arrival rate λ")
	f.Float64Var(&solveFlags.mu, "mu", 0, "service rate μ per server")
	f.IntVarP(&solveFlags.servers, "servers", "s", 0, "number of servers")
	f.IntVarP(&solveFlags.capacity, "capacity", "k", 0, "system capacity K")
	f.IntVar(&solveFlags.population, "population", 0, "calling population N")
	f.Float64Var(&solveFlags.variance, "variance", 0, "service time variance (mg1)")
	f.Float64SliceVar(&solveFlags.classes, "classes", nil, "per-class arrival rates, highest priority first")
	f.StringVarP(&solveFlags.output, "output", "o", formatTable, "output format: table, json or yaml")
	f.IntVar(&solveFlags.n, "n", 0, "report P(n customers in system)")
	f.IntVar(&solveFlags.r, "r", 0, "report P(more than r customers)")
	f.Float64Var(&solveFlags.t, "t", 0, "report P(W>t) and P(Wq>t)")
	if err := solveCmd.MarkFlagRequired("model"); err != nil {
		panic(err)
	}
	rootCmd.AddCommand(solveCmd)
}
