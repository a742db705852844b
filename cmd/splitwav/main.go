package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/openbird/openbird/config"
	"github.com/openbird/openbird/segments"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file")
	inDir := flag.String("in", "", "input directory of WAV recordings")
	outDir := flag.String("out", "", "output directory for segment clips")
	duration := flag.Float64("duration", 0, "segment duration in seconds")
	overlap := flag.Float64("overlap", -1, "segment overlap in seconds")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			logrus.WithError(err).Fatal("cannot load configuration")
		}
		cfg = loaded
	}
	cfg.Logging.Apply()

	if *inDir != "" {
		cfg.Segments.InputDir = *inDir
	}
	if *outDir != "" {
		cfg.Segments.OutputDir = *outDir
	}
	if *duration > 0 {
		cfg.Segments.Duration = *duration
	}
	if *overlap >= 0 {
		cfg.Segments.Overlap = *overlap
	}

	if cfg.Segments.InputDir == "" || cfg.Segments.OutputDir == "" {
		logrus.Fatal("both an input and an output directory are required")
	}
	if err := cfg.Segments.Validate(); err != nil {
		logrus.WithError(err).Fatal("invalid segment parameters")
	}
	if err := os.MkdirAll(cfg.Segments.OutputDir, 0o755); err != nil {
		logrus.WithError(err).Fatal("cannot create output directory")
	}

	rows, err := segments.SplitDir(segments.SplitConfig{
		InputDir:    cfg.Segments.InputDir,
		OutputDir:   cfg.Segments.OutputDir,
		Duration:    cfg.Segments.Duration,
		Overlap:     cfg.Segments.Overlap,
		SampleRate:  cfg.Audio.SampleRate,
		MaxDuration: cfg.Audio.MaxDuration,
	})
	if err != nil {
		logrus.WithError(err).Fatal("splitting failed")
	}

	manifest := cfg.Segments.Manifest
	if !filepath.IsAbs(manifest) {
		manifest = filepath.Join(cfg.Segments.OutputDir, manifest)
	}
	f, err := os.Create(manifest)
	if err != nil {
		logrus.WithError(err).Fatal("cannot create manifest")
	}
	if err := segments.WriteManifest(f, rows); err != nil {
		f.Close()
		logrus.WithError(err).Fatal("cannot write manifest")
	}
	if err := f.Close(); err != nil {
		logrus.WithError(err).Fatal("cannot write manifest")
	}

	logrus.WithFields(logrus.Fields{
		"segments": len(rows),
		"manifest": manifest,
	}).Info("done")
}
