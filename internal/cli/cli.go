package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/rulesmith/internal/app"
)

// DefaultConfigPath is read when -config is not given. It may be absent.
const DefaultConfigPath = "rulesmith.yaml"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
//
// Values are layered: defaults, then the YAML config file, then any flag
// that was set explicitly.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("rulesmith", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
Rulesmith - Loads, resolves and validates modifier rule sets.

Usage:
  rulesmith [options] [RULES_PATH]

Arguments:
  RULES_PATH
    Path to a single .hcl/.yaml file or a directory containing rule files.

Options:
`)
		flagSet.PrintDefaults()
	}

	defaults := app.DefaultConfig()
	rulesFlag := flagSet.String("rules", "", "Path to the rules file or directory.")
	rFlag := flagSet.String("r", "", "Path to the rules file or directory (shorthand).")
	configFlag := flagSet.String("config", DefaultConfigPath, "Path to the YAML configuration file.")
	logFormatFlag := flagSet.String("log-format", defaults.LogFormat, "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", defaults.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	workersFlag := flagSet.Int("workers", defaults.Workers, "Number of concurrent workers for decoding and resolution.")
	outputFlag := flagSet.String("output", defaults.Output, "Report format. Options: 'text', 'json' or 'none'.")
	publishURLFlag := flagSet.String("publish-url", "", "socket.io endpoint to publish the report to. Empty is disabled.")
	publishNSFlag := flagSet.String("publish-namespace", "/", "socket.io namespace for publishing.")
	publishEventFlag := flagSet.String("publish-event", defaults.Publish.Event, "Event name the report is emitted as.")
	publishTimeoutFlag := flagSet.Duration("publish-timeout", defaults.Publish.Timeout, "Upper bound for publishing the report.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	// An explicit -config must name an existing file; the default may be absent.
	loadConfig := app.LoadConfigFile
	flagSet.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			loadConfig = app.ReadConfigFile
		}
	})
	cfg := defaults
	if err := loadConfig(*configFlag, &cfg); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "log-format":
			cfg.LogFormat = *logFormatFlag
		case "log-level":
			cfg.LogLevel = *logLevelFlag
		case "workers":
			cfg.Workers = *workersFlag
		case "output":
			cfg.Output = *outputFlag
		case "publish-url":
			cfg.Publish.URL = *publishURLFlag
		case "publish-namespace":
			cfg.Publish.Namespace = *publishNSFlag
		case "publish-event":
			cfg.Publish.Event = *publishEventFlag
		case "publish-timeout":
			cfg.Publish.Timeout = *publishTimeoutFlag
		}
	})

	path := ""
	if *rulesFlag != "" {
		path = *rulesFlag
	} else if *rFlag != "" {
		path = *rFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	if path != "" {
		cfg.RulesPaths = []string{path}
	}
	slog.Debug("Rules paths determined.", "paths", cfg.RulesPaths)

	if len(cfg.RulesPaths) == 0 {
		slog.Debug("No rules path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
