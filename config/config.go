package config

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/openbird/openbird/audio"
)

// Config is the complete pipeline configuration.
type Config struct {
	Audio       AudioConfig       `yaml:"audio"`
	Bandpass    BandpassConfig    `yaml:"bandpass"`
	Spectrogram SpectrogramConfig `yaml:"spectrogram"`
	Segments    SegmentsConfig    `yaml:"segments"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// AudioConfig controls recording loading.
type AudioConfig struct {
	SampleRate      int     `yaml:"sample_rate"`
	MaxDuration     float64 `yaml:"max_duration"`     // seconds, 0 = no limit
	ResampleQuality string  `yaml:"resample_quality"` // quick|fast|medium|high|best
}

// BandpassConfig controls the optional pre-filtering stage.
type BandpassConfig struct {
	Enabled  bool    `yaml:"enabled"`
	LowFreq  float64 `yaml:"low_freq"`  // Hz
	HighFreq float64 `yaml:"high_freq"` // Hz
	Order    int     `yaml:"order"`
}

// SpectrogramConfig controls STFT analysis.
type SpectrogramConfig struct {
	Window  int     `yaml:"window"` // samples, also FFT size
	Shift   int     `yaml:"shift"`  // samples
	FloorDB float64 `yaml:"floor_db"`
}

// SegmentsConfig controls recording splitting.
type SegmentsConfig struct {
	Duration  float64 `yaml:"duration"` // seconds
	Overlap   float64 `yaml:"overlap"`  // seconds
	InputDir  string  `yaml:"input_dir"`
	OutputDir string  `yaml:"output_dir"`
	Manifest  string  `yaml:"manifest"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug|info|warn|error
	Format string `yaml:"format"` // text|json
}

// Default returns the documented default configuration.
func Default() *Config {
	return &Config{
		Audio: AudioConfig{
			SampleRate:      audio.DefaultSampleRate,
			ResampleQuality: "fast",
		},
		Bandpass: BandpassConfig{
			LowFreq:  500,
			HighFreq: 10000,
			Order:    audio.DefaultFilterOrder,
		},
		Spectrogram: SpectrogramConfig{
			Window:  512,
			Shift:   256,
			FloorDB: -100,
		},
		Segments: SegmentsConfig{
			Duration: 5,
			Manifest: "segments.csv",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the YAML file at path over the defaults and validates the
// result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Audio.Validate(); err != nil {
		return fmt.Errorf("audio: %w", err)
	}
	if err := c.Bandpass.Validate(c.Audio.SampleRate); err != nil {
		return fmt.Errorf("bandpass: %w", err)
	}
	if err := c.Spectrogram.Validate(); err != nil {
		return fmt.Errorf("spectrogram: %w", err)
	}
	if err := c.Segments.Validate(); err != nil {
		return fmt.Errorf("segments: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}

// Validate checks the audio section.
func (a *AudioConfig) Validate() error {
	if a.SampleRate <= 0 {
		return fmt.Errorf("sample_rate must be positive, got %d", a.SampleRate)
	}
	if a.MaxDuration < 0 {
		return fmt.Errorf("max_duration cannot be negative, got %g", a.MaxDuration)
	}
	if _, err := a.Quality(); err != nil {
		return err
	}
	return nil
}

// Quality maps the configured resample quality name to the audio package's
// preset.
func (a *AudioConfig) Quality() (audio.ResampleQuality, error) {
	switch a.ResampleQuality {
	case "", "fast":
		return audio.ResampleFast, nil
	case "quick":
		return audio.ResampleQuick, nil
	case "medium":
		return audio.ResampleMedium, nil
	case "high":
		return audio.ResampleHigh, nil
	case "best":
		return audio.ResampleBest, nil
	}
	return 0, fmt.Errorf("resample_quality must be one of [quick, fast, medium, high, best], got %q",
		a.ResampleQuality)
}

// Validate checks the bandpass section against the configured sample rate.
func (b *BandpassConfig) Validate(sampleRate int) error {
	if !b.Enabled {
		return nil
	}
	if b.LowFreq <= 0 {
		return fmt.Errorf("low_freq must be positive, got %g", b.LowFreq)
	}
	if b.HighFreq <= b.LowFreq {
		return fmt.Errorf("high_freq %g must be above low_freq %g", b.HighFreq, b.LowFreq)
	}
	if nyquist := float64(sampleRate) / 2; b.HighFreq >= nyquist {
		return fmt.Errorf("high_freq %g must be below the Nyquist limit %g", b.HighFreq, nyquist)
	}
	if b.Order < 1 {
		return fmt.Errorf("order must be at least 1, got %d", b.Order)
	}
	return nil
}

// Validate checks the spectrogram section.
func (s *SpectrogramConfig) Validate() error {
	if s.Window < 2 {
		return fmt.Errorf("window must be at least 2 samples, got %d", s.Window)
	}
	if s.Shift < 1 {
		return fmt.Errorf("shift must be at least 1 sample, got %d", s.Shift)
	}
	if s.Shift > s.Window {
		return fmt.Errorf("shift %d cannot exceed window %d", s.Shift, s.Window)
	}
	return nil
}

// Validate checks the segments section.
func (s *SegmentsConfig) Validate() error {
	if s.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %g", s.Duration)
	}
	if s.Overlap < 0 || s.Overlap >= s.Duration {
		return fmt.Errorf("overlap %g must be in [0, duration %g)", s.Overlap, s.Duration)
	}
	return nil
}

// Apply configures the global logrus logger from the logging section.
// Call only after Validate has passed.
func (l *LoggingConfig) Apply() {
	switch l.Level {
	case "debug":
		logrus.SetLevel(logrus.DebugLevel)
	case "warn":
		logrus.SetLevel(logrus.WarnLevel)
	case "error":
		logrus.SetLevel(logrus.ErrorLevel)
	default:
		logrus.SetLevel(logrus.InfoLevel)
	}
	if l.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

// Validate checks the logging section.
func (l *LoggingConfig) Validate() error {
	switch l.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	switch l.Format {
	case "text", "json":
	default:
		return fmt.Errorf("format must be 'text' or 'json', got %q", l.Format)
	}
	return nil
}
