package main

import (
	"flag"

	"github.com/sirupsen/logrus"

	"github.com/openbird/openbird/audio"
	"github.com/openbird/openbird/config"
	"github.com/openbird/openbird/spectrogram"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file")
	flag.Parse()

	if flag.NArg() != 1 {
		logrus.Fatal("usage: tospect [-config openbird.yaml] <recording>")
	}
	input := flag.Arg(0)

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			logrus.WithError(err).Fatal("cannot load configuration")
		}
		cfg = loaded
	}
	cfg.Logging.Apply()

	quality, err := cfg.Audio.Quality()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}

	opts := []audio.Option{
		audio.WithSampleRate(cfg.Audio.SampleRate),
		audio.WithResampleQuality(quality),
	}
	if cfg.Audio.MaxDuration > 0 {
		opts = append(opts, audio.WithMaxDuration(cfg.Audio.MaxDuration))
	}

	buf, err := audio.FromFile(input, opts...)
	if err != nil {
		logrus.WithError(err).Fatal("cannot load recording")
	}

	if cfg.Bandpass.Enabled {
		buf, err = buf.Bandpass(cfg.Bandpass.LowFreq, cfg.Bandpass.HighFreq,
			audio.WithOrder(cfg.Bandpass.Order))
		if err != nil {
			logrus.WithError(err).Fatal("bandpass failed")
		}
	}

	gen := &spectrogram.Generator{
		Window:  cfg.Spectrogram.Window,
		Shift:   cfg.Spectrogram.Shift,
		FloorDB: cfg.Spectrogram.FloorDB,
	}
	sp, err := gen.FromBuffer(buf)
	if err != nil {
		logrus.WithError(err).Fatal("spectrogram generation failed")
	}

	output := input + spectrogram.Ext
	if err := sp.Save(output); err != nil {
		logrus.WithError(err).Fatal("cannot save spectrogram")
	}

	logrus.WithFields(logrus.Fields{
		"input":  input,
		"output": output,
		"frames": sp.Frames(),
		"bins":   sp.Bins(),
	}).Info("spectrogram written")
}
