// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/gemcat/internal/config"
	"github.com/katalvlaran/gemcat/internal/logging"
	"github.com/katalvlaran/gemcat/internal/metrics"
	"github.com/katalvlaran/gemcat/internal/modelio"
	"github.com/katalvlaran/gemcat/internal/modelstore"
	"github.com/katalvlaran/gemcat/network"
)

// env is what every command needs after flags are parsed.
type env struct {
	cfg   *config.Config
	log   logging.Logger
	store *modelstore.Store

	prom *metrics.Prometheus
}

// setup loads the config, applies the global flags and builds the logger.
func setup(cmd *cobra.Command, g *globalOptions) (*env, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("logfile") {
		cfg.Log.OutputPaths = []string{g.logfile}
	}
	if flags.Changed("verbose") && g.verbose {
		cfg.Log.Level = "debug"
	}
	if flags.Changed("models-dir") {
		cfg.Models.CacheDir = g.modelsDir
	}
	if flags.Changed("metrics-file") {
		cfg.Metrics.Textfile = g.metricsFile
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	log = log.With(logging.String("run_id", uuid.NewString()), logging.String("command", cmd.Name()))

	store, err := modelstore.New(cfg.Models.CacheDir)
	if err != nil {
		return nil, err
	}

	e := &env{cfg: cfg, log: log, store: store}
	if cfg.Metrics.Textfile != "" {
		e.prom = metrics.NewPrometheus()
	}

	return e, nil
}

// recorder returns the Prometheus recorder when a textfile is configured.
func (e *env) recorder() metrics.Recorder {
	if e.prom == nil {
		return metrics.Noop()
	}

	return e.prom
}

// close writes the metrics textfile and flushes the logger.
func (e *env) close() error {
	var err error
	if e.prom != nil {
		if werr := e.prom.WriteTextfile(e.cfg.Metrics.Textfile); werr != nil {
			err = werr
		}
	}
	_ = e.log.Sync()

	return err
}

// loadModel reads ref as a file, or as a well-known model name when no
// such file exists.
func (e *env) loadModel(ctx context.Context, ref string) (*network.Model, error) {
	path := ref
	if _, err := os.Stat(ref); err != nil {
		if !errors.Is(err, fs.ErrNotExist) || !e.store.Has(ref) {
			return nil, fmt.Errorf("model %q: %w", ref, err)
		}
		e.log.Info("resolving well-known model", logging.String("model", ref))
		if path, err = e.store.Path(ctx, ref); err != nil {
			return nil, err
		}
	}

	model, err := modelio.LoadFile(path)
	if err != nil {
		return nil, err
	}
	e.log.Info("model loaded",
		logging.String("path", path),
		logging.Int("species", model.NumSpecies()),
		logging.Int("reactions", model.NumReactions()),
	)

	return model, nil
}
