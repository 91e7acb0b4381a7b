package config

// LogFileName is the session log written under Paths.LogDir.
const LogFileName = "chdbatch.log"

const (
	defaultLogDir           = "~/.local/share/chdbatch/logs"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultLogRetentionDays = 30
	defaultPSPHunkSize      = 2048
	defaultMenuWidth        = 56
	defaultMenuColor        = "auto"
	minMenuWidth            = 24
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Tool: Tool{
			PSPHunkSize: defaultPSPHunkSize,
		},
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
		Menu: Menu{
			Width: defaultMenuWidth,
			Color: defaultMenuColor,
		},
		Batch: Batch{
			ExtractProgress: true,
		},
	}
}
