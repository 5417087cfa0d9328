package domain

// Config represents the application configuration
type Config struct {
	Download     DownloadConfig     `mapstructure:"download"`
	Audio        AudioConfig        `mapstructure:"audio"`
	Notification NotificationConfig `mapstructure:"notification"`
	Logging      LoggingConfig      `mapstructure:"logging"`
}

// DownloadConfig contains download-related configuration
type DownloadConfig struct {
	OutputDir    string `mapstructure:"output_dir"`
	YTDLPBinary  string `mapstructure:"ytdlp_binary"`
	FFmpegBinary string `mapstructure:"ffmpeg_binary"`
}

// AudioConfig fixes the WAV output parameters applied by the FFmpeg
// post-processing step. Defaults match common DJ software expectations:
// 44.1 kHz, stereo, 16-bit PCM.
type AudioConfig struct {
	Format     string `mapstructure:"format"`
	SampleRate int    `mapstructure:"sample_rate"`
	Channels   int    `mapstructure:"channels"`
	Codec      string `mapstructure:"codec"`
}

// NotificationConfig contains desktop notification configuration
type NotificationConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Method  string `mapstructure:"method"` // osascript, notify-send
}

// LoggingConfig contains logging-related configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, or file path
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Download: DownloadConfig{
			OutputDir:    "$HOME/Downloads/yt-wav",
			YTDLPBinary:  "yt-dlp",
			FFmpegBinary: "ffmpeg",
		},
		Audio: AudioConfig{
			Format:     "wav",
			SampleRate: 44100,
			Channels:   2,
			Codec:      "pcm_s16le",
		},
		Notification: NotificationConfig{
			Enabled: false,
			Method:  "osascript",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			OutputPath: "stdout",
		},
	}
}
