package config

import "vqasset/internal/asset"

const (
	defaultWorkdirRoot = "~/.local/share/vqasset/workdir"
	defaultLogDir      = "~/.local/share/vqasset/logs"
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
	defaultConfigPath  = "~/.config/vqasset/config.toml"
	projectConfigName  = "vqasset.toml"
	workdirRootEnv     = "VQASSET_WORKDIR_ROOT"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkdirRoot: defaultWorkdirRoot,
			LogDir:      defaultLogDir,
		},
		Asset: Asset{
			DefaultYUVType: string(asset.DefaultYUVType),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
