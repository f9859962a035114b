// Package logging provides structured logging helpers for OpsHelm.
//
// All components log through log/slog. This package keeps attribute names
// consistent (workspace, report, run_id, ...) and hides sender addresses
// behind a hash unless a caller explicitly logs them.
//
// Create a logger with standard attributes:
//
//	logger := logging.WithOperation(slog.Default(), "report.daily")
//	logger.Info("report written",
//	    logging.Path(path),
//	    logging.Status(logging.StatusSuccess))
//
// Log senders without leaking addresses:
//
//	logger.Debug("message classified", logging.Sender(msg.From.Email))
package logging
