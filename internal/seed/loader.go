package seed

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for datasets on the local file system.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based dataset loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "seed-loader").Logger(),
	}
}

// Load reads a dataset file. An empty path yields the built-in dataset.
func (l *fileLoader) Load(ctx context.Context, filePath string) (*Dataset, error) {
	if filePath == "" {
		l.logger.Info().Msg("no seed file configured, using built-in dataset")
		return Default()
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.logger.Info().Str("file", filePath).Msg("loading seed file")

	file, err := os.Open(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to open seed file")
		return nil, fmt.Errorf("failed to open seed file %s: %w", filePath, err)
	}
	defer file.Close()

	ds, err := Decode(file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to read seed file")
		return nil, fmt.Errorf("seed file %s: %w", filePath, err)
	}

	l.logger.Info().
		Str("file", filePath).
		Int("categorias", len(ds.Categorias)).
		Int("productos", len(ds.Productos)).
		Msg("seed file loaded successfully")

	return ds, nil
}
