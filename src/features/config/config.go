package config

// Config holds the application configuration.
type Config struct {
	LibraryPath string     `yaml:"libraryPath" validate:"required"`
	Logger      Logger     `yaml:"logger"`
	Validation  Validation `yaml:"validation"`
	Report      Report     `yaml:"report"`
	Database    Database   `yaml:"database"`
	Server      Server     `yaml:"server"`
	Watch       Watch      `yaml:"watch"`
	Telegram    Telegram   `yaml:"telegram"`
	Artwork     Artwork    `yaml:"artwork"`
	Jobs        Jobs       `yaml:"jobs"`
}

// Validation controls which files are checked and how directories are walked.
type Validation struct {
	Recursive  bool     `yaml:"recursive"`
	Extensions []string `yaml:"extensions"` // with or without leading dot
}

// Report holds the default rendering options.
type Report struct {
	Format    string `yaml:"format" validate:"omitempty,oneof=text json"`
	Condensed bool   `yaml:"condensed"`
	OutputDir string `yaml:"output_dir"` // target for auto-named report files
}

// Database holds the scan history storage settings.
type Database struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Server holds the configuration for the Fiber server.
type Server struct {
	PrintRoutes bool   `yaml:"show_routes"`
	Port        uint32 `yaml:"port"`
}

// Logger holds the configuration for the app logging.
type Logger struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level"`
	Format  string `yaml:"format"`
}

// Watch controls the filesystem watcher.
type Watch struct {
	AutoStart       bool `yaml:"auto_start"` // start watching when serving
	DebounceSeconds int  `yaml:"debounce_seconds"`
}

type Telegram struct {
	Enabled bool   `yaml:"enabled"`
	Token   string `yaml:"token"`
	ChatID  int64  `yaml:"chat_id"`
}

// Artwork holds thumbnail rendering options for the HTTP surface.
type Artwork struct {
	ThumbnailSize int `yaml:"thumbnail_size"`
	Quality       int `yaml:"quality"`
}

type Jobs struct {
	Log      bool          `yaml:"log"`
	LogPath  string        `yaml:"log_path"`
	Webhooks WebhookConfig `yaml:"webhooks"`
}

type WebhookConfig struct {
	Enabled  bool     `yaml:"enabled"`
	JobTypes []string `yaml:"job_types"`
	Command  string   `yaml:"command"`
}
