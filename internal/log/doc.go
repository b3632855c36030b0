// Package log provides secure logging functionality with automatic
// sanitization of sensitive information, built on top of the standard
// slog package.
//
// This package extends slog to provide:
//   - Automatic sanitization of credential values (passwords, raw dump lines)
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// # Security Features
//
// The SecureHandler automatically sanitizes sensitive information in log
// output. This tool processes leaked credentials by design, so the risk
// of a raw password or dump line ending up in a shareable log file is
// high. Even in verbose mode, credential values are masked.
//
// # Usage
//
//	// Create a secure logger
//	logger := log.NewSecureLogger(os.Stderr, true) // verbose=true
//
//	// Use as a standard slog.Logger
//	logger.Info("record parsed",
//	    "password", "hunter2",  // Will be sanitized to "***REDACTED***"
//	    "source", "dump.txt",
//	)
//
//	// Set as default logger
//	slog.SetDefault(logger)
package log
