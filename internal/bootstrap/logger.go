package bootstrap

import "go.uber.org/zap"

// NewLogger builds the process-wide logger. Development gets the
// human-readable console encoder, production gets JSON.
func NewLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
