// Price Predictor - rental order price estimation
//
// Usage:
//
//	price-predictor [options] '<order json>'
//
// The predicted price is the only line written to stdout. Diagnostics go to
// stderr. The exit status is 0 on success and 1 on any failure.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"price-predictor/internal/common/config"
	"price-predictor/internal/common/errors"
	"price-predictor/internal/common/logger"
	"price-predictor/internal/common/metrics"
	"price-predictor/internal/common/observability"
	"price-predictor/internal/encoding"
	"price-predictor/internal/inference"
	"price-predictor/internal/predictor"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	exitCode := errors.ExitSuccess
	app := newApp(stdout, stderr, &exitCode)

	if err := app.Run(args); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return errors.ExitFailure
	}
	return exitCode
}

func newApp(stdout, stderr io.Writer, exitCode *int) *cli.App {
	return &cli.App{
		Name:      predictor.ServiceName,
		Usage:     "Predict the price of a rental order from its JSON description",
		UsageText: "price-predictor [options] '<order json>'",
		Version:   fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Writer:    stdout,
		ErrWriter: stderr,

		// the single positional argument is the payload, never a subcommand
		HideHelpCommand: true,

		// failures are reported through the returned error, never os.Exit
		ExitErrHandler: func(*cli.Context, error) {},
		// keep stdout clean: usage errors are reported, help is not printed
		OnUsageError: func(_ *cli.Context, err error, _ bool) error {
			return err
		},

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file (default: configs/config.yaml when present)",
				EnvVars: []string{"PREDICTOR_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "model",
				Aliases: []string{"m"},
				Usage:   "Path to the model artifact (default: next to the executable)",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"PREDICTOR_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:  "metrics-textfile",
				Usage: "Write Prometheus metrics to this file after the prediction",
			},
		},

		Action: func(c *cli.Context) error {
			code, err := runPredict(c, stdout, stderr)
			*exitCode = code
			return err
		},
	}
}

// runPredict returns a non-nil error only when the process could not be set
// up. Pipeline failures are logged and reported through the exit code.
func runPredict(c *cli.Context, stdout, stderr io.Writer) (int, error) {
	ctx := context.Background()

	loaded, err := loadConfig(c.String("config"))
	if err != nil {
		return errors.ExitFailure, err
	}
	cfg := loaded.Config

	level := cfg.Logging.Level
	if c.IsSet("log-level") {
		level = c.String("log-level")
	}

	invocationID := uuid.NewString()
	log := logger.NewWriter(stderr, level, cfg.Logging.Format).WithFields(map[string]interface{}{
		"invocationId": invocationID,
	})
	defer log.Sync()

	log.Debug("configuration loaded", map[string]interface{}{
		"configFile": loaded.ConfigFile,
		"envFile":    loaded.EnvFile,
		"version":    cfg.App.Version,
	})

	recorder := metrics.NewRecorder()
	errHandler := errors.NewErrorHandler(log, recorder)

	obs, err := observability.New(predictor.ServiceName, recorder.Registry())
	if err != nil {
		log.Warn("stage metrics disabled", map[string]interface{}{"error": err.Error()})
		obs = &observability.Observability{}
	}
	defer obs.Shutdown()

	textfile := cfg.Metrics.TextfilePath
	if c.IsSet("metrics-textfile") {
		textfile = c.String("metrics-textfile")
	}
	defer flushMetrics(log, recorder, textfile)

	if c.NArg() != 1 {
		err := errors.NewMalformedInputError(fmt.Errorf("expected exactly one JSON argument, got %d", c.NArg()))
		return errHandler.HandleError(err), nil
	}

	modelPath := resolveModelPath(log, cfg, c.String("model"))
	handler := predictor.NewHandler(
		predictor.LoadConfig(),
		encoding.NewEncoder(encoding.DefaultVocabulary()),
		inference.NewFileLoader(modelPath),
		obs,
		recorder,
		log,
	)

	prediction, err := handler.Execute(ctx, &predictor.Input{
		InvocationID: invocationID,
		Payload:      c.Args().First(),
	})
	if err != nil {
		return errHandler.HandleError(err), nil
	}

	fmt.Fprintln(stdout, decimal.NewFromFloat(prediction.Price).String())
	return errors.ExitSuccess, nil
}

func loadConfig(path string) (*config.LoadResult, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

func resolveModelPath(log logger.Logger, cfg *config.Config, override string) string {
	if override != "" {
		return override
	}

	installDir, err := config.InstallDir()
	if err != nil {
		log.Warn("cannot locate executable, resolving model from working directory", map[string]interface{}{
			"error": err.Error(),
		})
		installDir = "."
	}
	return cfg.Model.ResolvePath(installDir)
}

func flushMetrics(log logger.Logger, recorder *metrics.Recorder, path string) {
	if path == "" {
		return
	}
	if err := recorder.WriteTextfile(path); err != nil {
		log.Warn("failed to write metrics textfile", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
	}
}
