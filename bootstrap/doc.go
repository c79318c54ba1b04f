// Package bootstrap runs the asrdrop binary's lifecycle: config defaults and
// validation, logger setup, start and stop hooks, and graceful shutdown on
// SIGINT/SIGTERM.
//
// Use Run for services that live until a signal arrives and RunTask for a
// single finite job.
package bootstrap
