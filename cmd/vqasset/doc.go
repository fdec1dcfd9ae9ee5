// Package main hosts the vqasset CLI entrypoint and command graph.
//
// Commands load a dataset file into assets, then either describe them
// (resolved sizes, frame ranges, sampling format and bitrates) or manage their
// scratch directories under the configured workdir root. Configuration
// resolution and logger setup live in commandContext so subcommands only deal
// with presentation.
package main
