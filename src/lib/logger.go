package lib

import "go.uber.org/zap"

var Logger *zap.Logger

// InitLogger sets the global logger. Production gets JSON output, everything
// else the development console encoder.
func InitLogger(env string) (*zap.Logger, error) {
	var err error
	if env == "production" {
		Logger, err = zap.NewProduction()
	} else {
		Logger, err = zap.NewDevelopment()
	}
	return Logger, err
}
