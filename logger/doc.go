// Package logger provides structured logging for dock using zerolog.
//
// Every core package logs through a named component logger so reload phases
// and per-object binds can be filtered by component:
//
//	log := logger.Get("binder")
//	log.Debug("member bound", logger.Fields(logger.FieldMember, "Log"))
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "console"
package logger
