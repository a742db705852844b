package main

import (
	"flag"

	"github.com/sirupsen/logrus"

	"github.com/openbird/openbird/audio"
)

func main() {
	low := flag.Float64("low", 500, "low cutoff in Hz")
	high := flag.Float64("high", 10000, "high cutoff in Hz")
	order := flag.Int("order", audio.DefaultFilterOrder, "Butterworth filter order")
	start := flag.Float64("start", 0, "trim start in seconds")
	end := flag.Float64("end", 0, "trim end in seconds (0 = end of clip)")
	rate := flag.Int("rate", audio.DefaultSampleRate, "target sample rate in Hz")
	flag.Parse()

	if flag.NArg() != 2 {
		logrus.Fatal("usage: filtwav [flags] <in> <out.wav>")
	}
	input, output := flag.Arg(0), flag.Arg(1)

	buf, err := audio.FromFile(input, audio.WithSampleRate(*rate))
	if err != nil {
		logrus.WithError(err).Fatal("cannot load recording")
	}

	if *start > 0 || *end > 0 {
		stop := *end
		if stop <= 0 {
			stop = buf.Duration()
		}
		buf = buf.Trim(*start, stop)
	}

	buf, err = buf.Bandpass(*low, *high, audio.WithOrder(*order))
	if err != nil {
		logrus.WithError(err).Fatal("bandpass failed")
	}

	if err := buf.Save(output); err != nil {
		logrus.WithError(err).Fatal("cannot save output")
	}

	logrus.WithFields(logrus.Fields{
		"input":    input,
		"output":   output,
		"band":     []float64{*low, *high},
		"duration": buf.Duration(),
	}).Info("filtered clip written")
}
