// Package logging provides structured logging for sift.
//
// This package wraps Go's log/slog to write JSON-formatted logs with
// persistent context attributes. Filter managers log every staged mutation
// and every activation at DEBUG level, so a log file reconstructs how a
// filtered view came to be.
//
// # Thread Safety
//
// [Logger] is safe for concurrent use. Child loggers created via With*
// methods share the underlying writer.
//
// # Basic Usage
//
//	logger, err := logging.NewLogger("/path/to/logs", "DEBUG")
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	mgrLogger := logger.WithManager(mgr.ID()).WithComponent("tui")
//	mgrLogger.Debug("filter applied", "filter", "year", "payload", 2000)
//
// Output:
//
//	{"time":"...","level":"DEBUG","msg":"filter applied","manager_id":"...","component":"tui","filter":"year","payload":2000}
//
// Use [NopLogger] in tests and wherever logging is disabled.
package logging
