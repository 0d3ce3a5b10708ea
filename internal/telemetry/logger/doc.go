// Package logger provides structured logging for env-config.
//
// It builds log/slog loggers with:
//
//   - JSON and text output formats
//   - Log level filtering
//   - Automatic redaction of attributes whose key looks sensitive
//     (password, secret, token, ...)
//   - Masking helpers for values that must be shown partially
package logger
