package main

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// newLogger returns a console logger writing to out at the named level.
func newLogger(out io.Writer, level string, noColor bool) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level: %w", err)
	}

	w := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.TimeOnly,
		NoColor:    noColor,
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

func logWindow(log zerolog.Logger, scenario string, r windowResult) {
	if r.err != nil {
		log.Error().Err(r.err).Str("scenario", scenario).Int("window", r.index).Msg("window rejected")
		return
	}

	f := r.result.Features
	log.Debug().
		Str("scenario", scenario).
		Int("window", r.index).
		Float64("score", r.result.Score).
		Stringer("gate", r.result.Gate).
		Int("taps", f.NumTaps).
		Float64("hb_sum_ratio", f.HbSumRatio).
		Float64("autocorr_metric", f.AutocorrMetric).
		Float64("log_std_hb", f.LogStdHb).
		Msg("window rated")
}
