// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments (development vs production)
// and integrates with the Fiber web framework.
//
// # Correlation
//
// Two helpers attach correlation ids to every entry of a derived logger:
//   - WithRayID reads the request id stored by the rayid middleware on a Fiber context.
//   - WithCycle tags the entries of one SaveChanges cycle, so the statements of a
//     transaction can be followed from begin to commit or rollback.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Encoding: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Server started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
