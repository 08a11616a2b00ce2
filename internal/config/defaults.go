package config

const (
	defaultCatalogDir    = "~/.local/share/gazecat"
	defaultLogDir        = "~/.local/share/gazecat/logs"
	defaultScanWorkers   = 4
	defaultWatchDebounce = 2
	defaultWatchDevices  = true
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CatalogDir: defaultCatalogDir,
			LogDir:     defaultLogDir,
		},
		Scan: Scan{
			Workers: defaultScanWorkers,
		},
		Watch: Watch{
			DebounceSeconds: defaultWatchDebounce,
			Devices:         defaultWatchDevices,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
