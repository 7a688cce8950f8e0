// Package logging centralizes logger configuration for services built on
// secutils: consistent console and rotating-file sinks behind a single
// setup call, with a structured multi-line formatter shared by every
// sink.
//
// Key features
//   - Named loggers in a process-wide, mutex-protected registry;
//     re-running Setup for a name replaces the previous sinks instead of
//     accumulating them, so setup is idempotent by observable result
//   - Structured-first API over rs/zerolog: typed fields plus recognized
//     extras (request, response, user, details, objects) rendered as
//     indented detail lines in a fixed order
//   - File rotation on daily or hourly boundaries via lumberjack, capped
//     backup retention
//   - Error enrichment: Err includes the full cause chain
//     (outermost -> root), a joined history line, and operation tags
//     when the chain carries secutils detailed errors
//
// Typical usage
//
//	log, err := logging.Setup("svc", "svc.main", logging.Options{
//		Console: true,
//		File:    true,
//		LogDir:  "/var/log/svc",
//		Level:   "info",
//	})
//	if err != nil {
//		panic(err) // a logless process is worse than a crashed one
//	}
//	defer logging.Close()
//
//	log.InfoWith().User("alice").Msg("started")
package logging
