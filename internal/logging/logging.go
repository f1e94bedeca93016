// Package logging holds the shared application logger. The scan engine
// itself never logs; this is for the CLI layer.
package logging

import (
	"go.uber.org/zap"
)

// Logger is the process-wide sugared logger. Init must be called before use.
var Logger *zap.SugaredLogger

// Init configures the logger. Debug mode enables development output at
// debug level; otherwise only warnings and above reach the console.
func Init(debug bool) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	cfg.Encoding = "console"

	logger, err := cfg.Build()
	if err != nil {
		panic("initializing logger: " + err.Error())
	}
	Logger = logger.Sugar()
}
