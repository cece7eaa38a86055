package config

func defaultConfig() *Config {
	return &Config{
		LibraryPath: "./music",
		Logger: Logger{
			Enabled: true,
			Level:   "info",
			Format:  "text",
		},
		Validation: Validation{
			Recursive:  true,
			Extensions: []string{"mp3", "mp4", "m4a"},
		},
		Report: Report{
			Format:    "text",
			Condensed: false,
			OutputDir: "",
		},
		Database: Database{
			Enabled: false,
			Path:    "./validations.db",
		},
		Server: Server{
			PrintRoutes: false,
			Port:        3535,
		},
		Watch: Watch{
			AutoStart:       false,
			DebounceSeconds: 5,
		},
		Telegram: Telegram{
			Enabled: false,
			Token:   "", // Can be obtained with https://t.me/BotFather
			ChatID:  0,
		},
		Artwork: Artwork{
			ThumbnailSize: 300,
			Quality:       85,
		},
		Jobs: Jobs{
			Log:     true,
			LogPath: "./logs/jobs",
			Webhooks: WebhookConfig{
				Enabled:  false,
				JobTypes: []string{},
				Command:  "",
			},
		},
	}
}
