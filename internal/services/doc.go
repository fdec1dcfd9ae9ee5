// Package services defines shared utilities consumed by the asset core, the
// dataset loader, the workspace allocator and the CLI.
//
// Key responsibilities:
//   - Context helpers that stamp dataset labels, asset identifiers, and
//     correlation identifiers for logging.
//   - Structured error markers plus the Wrap helper that keep failure messages
//     uniform and let the CLI translate them into exit codes.
//
// Use these helpers when adding new derivations or collaborators so error
// classification stays consistent across the repository.
package services
