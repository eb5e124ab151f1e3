// Package log provides the leveled logging interface used by nodegraph.
//
// The graph package never prints on its own: every node resolves a Logger,
// either the one passed with graph.WithLogger or the package-level default
// held here. Edge bookkeeping and individual propagation steps are logged at
// LogLevelDebug, aborted guarded walks at LogLevelWarn. The default logger
// writes WARN and above to stderr.
//
// # Log Levels
//
//   - LogLevelDebug: edge additions, removals and fired transforms
//   - LogLevelInfo: general informational messages
//   - LogLevelWarn: guarded walks stopped by a depth limit, cycle or context
//   - LogLevelError: error messages
//   - LogLevelNone: disables all logging output
//
// # Example Usage
//
//	logger := log.NewDefaultLogger(log.LogLevelDebug)
//	a := graph.NewNode(1, graph.WithName("a"), graph.WithLogger(logger))
//
// Or globally:
//
//	log.SetLogLevel(log.LogLevelDebug)
//
// # golog Integration
//
// For users who prefer github.com/kataras/golog:
//
//	glogger := golog.New()
//	glogger.SetPrefix("[MyApp] ")
//
//	logger := log.NewGologLogger(glogger)
//	logger.SetLevel(log.LogLevelDebug)
//	log.SetDefaultLogger(logger)
//
// # Thread Safety
//
// DefaultLogger and GologLogger are safe for concurrent use. Swapping the
// package-level logger with SetDefaultLogger is safe while other goroutines
// are logging.
package log
