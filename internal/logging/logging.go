package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New builds the service logger. "debug" switches to the development
// encoder; anything else gets the production JSON logger.
func New(level string) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if level == "debug" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
