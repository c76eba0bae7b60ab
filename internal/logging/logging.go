// ABOUTME: Builds the zap logger used by every mailprompt command.
// ABOUTME: Logs go to a file because the TUI owns the terminal; each run gets a run_id.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/2389-research/mailprompt/internal/config"
)

// New builds a JSON production logger writing to the configured log file.
// With dev set it builds a development console logger at debug level instead.
func New(cfg *config.Config, dev bool) (*zap.Logger, error) {
	path, err := cfg.GetLogPath()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	var zc zap.Config
	if dev {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
		level, err := zap.ParseAtomicLevel(cfg.GetLogLevel())
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.GetLogLevel(), err)
		}
		zc.Level = level
	}
	zc.OutputPaths = []string{path}
	zc.ErrorOutputPaths = []string{path}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger.With(zap.String("run_id", uuid.NewString())), nil
}
