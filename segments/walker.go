package segments

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/openbird/openbird/audio"
)

// SplitConfig drives SplitDir.
type SplitConfig struct {
	// InputDir is searched recursively for WAV recordings.
	InputDir string
	// OutputDir receives the segment WAV files.
	OutputDir string

	// Duration and Overlap are the segment length and overlap in seconds.
	Duration float64
	Overlap  float64

	// SampleRate is the target rate segments are resampled to.
	// Zero means audio.DefaultSampleRate.
	SampleRate int
	// MaxDuration rejects source recordings longer than this many seconds.
	// Zero means no limit.
	MaxDuration float64
}

// SplitDir walks cfg.InputDir for WAV recordings, splits each into
// fixed-duration segments, writes the segment clips into cfg.OutputDir, and
// returns the manifest rows. Recordings that fail to load are skipped with
// a warning so one broken file does not abort a long batch.
func SplitDir(cfg SplitConfig) ([]Row, error) {
	if cfg.SampleRate == 0 {
		cfg.SampleRate = audio.DefaultSampleRate
	}

	var sources []string
	err := filepath.WalkDir(cfg.InputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".wav") {
			sources = append(sources, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("segments: walk %s: %w", cfg.InputDir, err)
	}

	logrus.WithFields(logrus.Fields{
		"dir":      cfg.InputDir,
		"sources":  len(sources),
		"duration": cfg.Duration,
		"overlap":  cfg.Overlap,
	}).Info("splitting recordings")

	var rows []Row
	for _, src := range sources {
		opts := []audio.Option{audio.WithSampleRate(cfg.SampleRate)}
		if cfg.MaxDuration > 0 {
			opts = append(opts, audio.WithMaxDuration(cfg.MaxDuration))
		}

		buf, err := audio.FromFile(src, opts...)
		if err != nil {
			logrus.WithError(err).WithField("source", src).Warn("skipping recording")
			continue
		}

		segs, err := Split(buf, cfg.Duration, cfg.Overlap)
		if err != nil {
			return nil, err
		}

		base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
		for _, seg := range segs {
			clip := filepath.Join(cfg.OutputDir,
				fmt.Sprintf("%s_%06.2f_%06.2f.wav", base, seg.Start, seg.End))
			if err := seg.Buffer.Save(clip); err != nil {
				return nil, err
			}
			rows = append(rows, Row{
				Clip:   clip,
				Source: src,
				Start:  seg.Start,
				End:    seg.End,
			})
		}

		logrus.WithFields(logrus.Fields{
			"source":   src,
			"segments": len(segs),
		}).Debug("recording split")
	}

	return rows, nil
}
