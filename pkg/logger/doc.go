// Package logger builds configured slog loggers.
//
// New assembles a *slog.Logger from functional options, with presets for
// development (text, debug) and production (JSON, info):
//
//	log := logger.New(logger.WithProduction("api-gateway"))
//	limiter, err := fixedwindow.New(store, cfg, fixedwindow.WithLogger(log))
//
// The helpers in attr.go keep attribute keys consistent across the module.
package logger
