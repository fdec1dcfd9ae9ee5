// Package dataset reads TOML dataset files and turns each distorted entry into
// an asset.Asset paired with its reference.
//
// A dataset file names the dataset, lists reference videos by name, and lists
// distorted videos that point back at a reference. Shared metadata under
// [defaults] is merged beneath each entry's own metadata, so entry keys win.
// Relative media paths resolve against the dataset file's directory.
package dataset
