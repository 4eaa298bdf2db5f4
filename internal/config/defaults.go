package config

const (
	defaultConfigPath    = "~/.config/audioquality/config.toml"
	projectConfigName    = "audioquality.toml"
	defaultFFmpegBinary  = "ffmpeg"
	defaultProbeTimeout  = 30
	defaultQualityKey    = "audio_quality"
	defaultCommentKey    = "comment"
	defaultCommentFormat = "Audio Quality: %d%%"
	defaultWorkers       = 1
	defaultSidecarSuffix = ".quality.toml"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"

	// FailurePolicyZero writes a literal 0 when nothing could be probed.
	FailurePolicyZero = "zero"
	// FailurePolicyScore writes the scorer's result for the unknown fact.
	FailurePolicyScore = "score"
)

var defaultExtensions = []string{
	".aac", ".aiff", ".alac", ".ape", ".dsf", ".flac", ".m4a", ".mka",
	".mp2", ".mp3", ".mpc", ".ogg", ".opus", ".wav", ".wma", ".wv",
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Probe: Probe{
			FFmpegBinary:   defaultFFmpegBinary,
			TimeoutSeconds: defaultProbeTimeout,
		},
		Tagging: Tagging{
			QualityKey:    defaultQualityKey,
			WriteComment:  true,
			CommentKey:    defaultCommentKey,
			CommentFormat: defaultCommentFormat,
			FailurePolicy: FailurePolicyZero,
		},
		Library: Library{
			Workers:       defaultWorkers,
			Extensions:    append([]string(nil), defaultExtensions...),
			SidecarSuffix: defaultSidecarSuffix,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
