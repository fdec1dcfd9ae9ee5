// Package config loads, normalizes, and validates vqasset configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the VQASSET_WORKDIR_ROOT
// environment override. AssetOptions turns the loaded values into the
// construction defaults used for every asset.
package config
