package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/specialistvlad/evmsim/internal/app"
	"github.com/specialistvlad/evmsim/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable bound to a flag, e.g.
// EVMSIM_LOG_LEVEL for --log-level.
const EnvPrefix = "EVMSIM"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	var cfg *app.Config
	cmd := newRootCommand(v, func(c *app.Config) { cfg = c })
	cmd.SetArgs(args)
	cmd.SetOut(output)
	cmd.SetErr(output)

	if err := cmd.Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return nil, false, exitErr
		}
		return nil, false, usageError("%s", err.Error())
	}

	// --help, or nothing to simulate.
	if cfg == nil {
		return nil, true, nil
	}
	slog.Debug("CLI parser finished successfully.", "config", cfg)
	return cfg, false, nil
}

func newRootCommand(v *viper.Viper, done func(*app.Config)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evmsim [flags] [PROJECT_PATH]",
		Short: "Monte Carlo simulation of resource-constrained project execution.",
		Long: `evmsim - Monte Carlo simulation of project execution with Earned Value metrics.

Each run assigns tasks to resource agents with sampled efficiency and noisy
progress, records CPI/SPI and completion per time step, and writes every run's
series to CSV before printing a summary of the batch.

Examples:
  evmsim plan.hcl
  evmsim -e experiment.hcl --runs 200 --workers 8
  evmsim -p plan.yaml --cost 2=120 --error-margin 0.3 -o out/results.csv

Every flag can also be set through the environment, e.g. EVMSIM_LOG_LEVEL=debug.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 && !cmd.Flags().Changed("project") {
				if err := cmd.Flags().Set("project", args[0]); err != nil {
					return usageError("invalid project path: %v", err)
				}
			}
			if v.GetString("experiment") == "" && v.GetString("project") == "" {
				slog.Debug("No experiment or project provided, printing usage and exiting.")
				return cmd.Help()
			}
			cfg, err := buildConfig(cmd, v)
			if err != nil {
				return err
			}
			done(cfg)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringP("experiment", "e", "", "Path to an HCL experiment file.")
	f.StringP("project", "p", "", "Path to the project plan (.hcl, .yaml, .yml or a directory of .hcl files).")
	f.Int("runs", config.DefaultRuns, "Number of Monte Carlo runs.")
	f.Uint64("seed", 0, "Base seed for the per-run random streams.")
	f.Int("workers", config.DefaultWorkers, "Number of runs simulated concurrently.")
	f.StringP("output", "o", config.DefaultOutput, "CSV file receiving every run's time series.")
	f.Float64("error-margin", config.DefaultErrorMargin, "Relative noise applied to each progress increment.")
	f.Int("reassign-every", config.DefaultReassignmentFrequency, "Release all held tasks every N steps. 0 disables reassignment.")
	f.Int("max-steps", config.DefaultMaxSteps, "Step limit after which a run is truncated.")
	f.Bool("shuffle-agents", false, "Shuffle the agent activation order once per run.")
	f.StringArray("cost", nil, "Override a resource's hourly cost as ID=RATE. Repeatable.")
	f.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	f.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	f.String("log-file", "", "Write logs to this file, rotated by size, instead of the output.")
	f.Int("healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")

	// BindPFlags only fails for a nil flag set.
	_ = v.BindPFlags(f)
	return cmd
}

// isSet reports whether a value was given explicitly, on the command line or
// through the environment. Defaults do not count.
func isSet(cmd *cobra.Command, name string) bool {
	if cmd.Flags().Changed(name) {
		return true
	}
	_, ok := os.LookupEnv(envName(name))
	return ok
}

func envName(flag string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}

func buildConfig(cmd *cobra.Command, v *viper.Viper) (*app.Config, error) {
	logFormat := strings.ToLower(v.GetString("log-format"))
	if logFormat != "text" && logFormat != "json" {
		return nil, usageError("invalid log-format: must be 'text' or 'json'")
	}

	logLevel := strings.ToLower(v.GetString("log-level"))
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, usageError("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}

	overrides, err := buildOverrides(cmd, v)
	if err != nil {
		return nil, err
	}
	slog.Debug("CLI parameter validation complete.")

	cfg, err := app.NewConfig(app.Config{
		ExperimentPath:  v.GetString("experiment"),
		Overrides:       overrides,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
		LogFile:         v.GetString("log-file"),
		HealthcheckPort: v.GetInt("healthcheck-port"),
	})
	if err != nil {
		return nil, usageError("%s", err.Error())
	}
	return cfg, nil
}

// buildOverrides collects only the explicitly set simulation flags, so that
// flag defaults never mask values from an experiment file.
func buildOverrides(cmd *cobra.Command, v *viper.Viper) (config.Overrides, error) {
	var o config.Overrides
	if isSet(cmd, "project") {
		o.ProjectPath = ptr(v.GetString("project"))
	}
	if isSet(cmd, "runs") {
		o.Runs = ptr(v.GetInt("runs"))
	}
	if isSet(cmd, "seed") {
		o.Seed = ptr(v.GetUint64("seed"))
	}
	if isSet(cmd, "workers") {
		o.Workers = ptr(v.GetInt("workers"))
	}
	if isSet(cmd, "output") {
		o.Output = ptr(v.GetString("output"))
	}
	if isSet(cmd, "error-margin") {
		o.ErrorMargin = ptr(v.GetFloat64("error-margin"))
	}
	if isSet(cmd, "reassign-every") {
		o.ReassignmentFrequency = ptr(v.GetInt("reassign-every"))
	}
	if isSet(cmd, "max-steps") {
		o.MaxSteps = ptr(v.GetInt("max-steps"))
	}
	if isSet(cmd, "shuffle-agents") {
		o.ShuffleAgents = ptr(v.GetBool("shuffle-agents"))
	}
	if isSet(cmd, "cost") {
		pairs := v.GetStringSlice("cost")
		if cmd.Flags().Changed("cost") {
			var err error
			if pairs, err = cmd.Flags().GetStringArray("cost"); err != nil {
				return o, usageError("invalid --cost: %v", err)
			}
		}
		costs, err := parseCosts(pairs)
		if err != nil {
			return o, err
		}
		o.CostOverrides = costs
	}
	return o, nil
}

// parseCosts parses ID=RATE pairs. Later pairs win for a repeated ID.
func parseCosts(pairs []string) (map[int]float64, error) {
	costs := make(map[int]float64, len(pairs))
	for _, pair := range pairs {
		idStr, rateStr, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, usageError("invalid --cost %q: expected ID=RATE", pair)
		}
		id, err := strconv.Atoi(strings.TrimSpace(idStr))
		if err != nil {
			return nil, usageError("invalid --cost %q: resource id must be an integer", pair)
		}
		rate, err := strconv.ParseFloat(strings.TrimSpace(rateStr), 64)
		if err != nil || rate < 0 {
			return nil, usageError("invalid --cost %q: rate must be a non-negative number", pair)
		}
		costs[id] = rate
	}
	return costs, nil
}

func ptr[T any](v T) *T { return &v }
