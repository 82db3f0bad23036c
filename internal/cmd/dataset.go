package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"github.com/Iron-Ham/sift/internal/config"
	"github.com/Iron-Ham/sift/internal/errors"
	"github.com/Iron-Ham/sift/internal/logging"
	"github.com/Iron-Ham/sift/internal/record"
)

// session is what every dataset command starts from.
type session struct {
	cfg     *config.Config
	logger  *logging.Logger
	paths   []string
	records []record.Record
}

// openSession loads the config, creates the logger and reads the dataset
// named by args, falling back to data.paths.
func openSession(ctx context.Context, fs afero.Fs, args []string) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}

	paths := args
	if len(paths) == 0 {
		paths = cfg.Data.Paths
	}
	if len(paths) == 0 {
		_ = logger.Close()
		return nil, errors.NewValidationError("no dataset files given and data.paths is empty").WithField("data.paths")
	}

	records, err := record.LoadAll(ctx, fs, paths)
	if err != nil {
		logger.Error("failed to load dataset", "paths", paths, "error", err)
		_ = logger.Close()
		return nil, err
	}
	logger.Info("dataset loaded", "paths", paths, "records", len(records))

	return &session{cfg: cfg, logger: logger, paths: paths, records: records}, nil
}

func (s *session) Close() error {
	return s.logger.Close()
}

// newLogger writes to sift.log under logging.dir when logging is enabled.
func newLogger(cfg *config.Config) (*logging.Logger, error) {
	if !cfg.Logging.Enabled {
		return logging.NopLogger(), nil
	}
	logger, err := logging.NewLogger(cfg.Logging.ResolveDir(), logging.ParseLevel(cfg.Logging.Level))
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}
