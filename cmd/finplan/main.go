package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rpgo/finplan/internal/calculation"
	"github.com/rpgo/finplan/internal/config"
	"github.com/rpgo/finplan/internal/domain"
	"github.com/rpgo/finplan/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries the global flag values and the services built from them
type app struct {
	configFile string
	format     string
	outputDir  string
	verbose    bool

	log    *zap.SugaredLogger
	parser *config.InputParser
	engine *calculation.PlanningEngine
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: could not read .env: %v\n", err)
	}

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "finplan",
		Short: "Household financial planning calculator",
		Long: `finplan projects asset growth toward goals, solves for the contributions
needed to close funding gaps, amortizes loans, projects inflation-adjusted
expenses and simulates household net worth from a YAML plan file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.configFile, "config", "c", envOr("FINPLAN_CONFIG", "plan.yaml"), "plan file (YAML)")
	flags.StringVarP(&a.format, "format", "f", envOr("FINPLAN_FORMAT", "console"), "output format")
	flags.StringVar(&a.outputDir, "output-dir", "", "write the report to a timestamped file in this directory")
	flags.BoolVarP(&a.verbose, "verbose", "v", envBool("FINPLAN_VERBOSE"), "debug logging")

	rootCmd.AddCommand(
		newReportCmd(a),
		newProjectCmd(a),
		newAmortizeCmd(a),
		newGoalsCmd(a),
		newReconcileCmd(a),
		newValidateCmd(a),
		newExampleCmd(a),
	)
	return rootCmd
}

func (a *app) init() error {
	log, err := logging.New(a.verbose)
	if err != nil {
		return err
	}
	a.log = log
	a.parser = config.NewInputParser()
	a.engine = calculation.NewPlanningEngine()
	a.engine.Debug = a.verbose
	a.engine.SetLogger(log)
	return nil
}

func (a *app) loadPlan() (*domain.Plan, error) {
	plan, err := a.parser.LoadFromFile(a.configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load plan: %w", err)
	}
	a.log.Debugf("loaded plan %s: %d assets, %d goals, %d loans, %d expenses",
		a.configFile, len(plan.Assets), len(plan.Goals), len(plan.Loans), len(plan.Expenses))
	return plan, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && b
}
