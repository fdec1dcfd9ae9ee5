// Package logging builds the slog loggers used by the vqasset CLI and its
// supporting packages.
//
// It provides console and JSON handlers, a log file sink that always records
// JSON, and helpers that tag records with the dataset, asset and workdir a
// command is working on. NewNop serves tests and callers that do not log.
package logging
