// Package logger builds configured slog loggers for the engine and its
// components.
//
// New applies functional options over production-safe defaults (JSON, info
// level, stdout). Development and production presets cover the common cases;
// Config maps the same knobs to environment variables.
package logger
