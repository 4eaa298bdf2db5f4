package quality

import (
	"fmt"

	"audioquality/internal/media/probe"
)

// Bounds of every Score.
const (
	MinScore = 0
	MaxScore = 100
)

// Score is a quality estimate in [MinScore, MaxScore].
type Score int

func (s Score) String() string {
	return fmt.Sprintf("%d", int(s))
}

// Scorer holds the tables a score is computed from.
type Scorer struct {
	Codecs      CodecTable
	DefaultBase int
	Bitrate     BonusTable
	SampleRate  BonusTable
}

// Default returns a Scorer over the built-in tables.
func Default() Scorer {
	return Scorer{
		Codecs:      DefaultCodecs(),
		DefaultBase: DefaultBase,
		Bitrate:     DefaultBitrate(),
		SampleRate:  DefaultSampleRate(),
	}
}

// Breakdown shows how a score was reached.
type Breakdown struct {
	Codec           string `json:"codec" yaml:"codec"`
	Base            int    `json:"base" yaml:"base"`
	KnownCodec      bool   `json:"known_codec" yaml:"known_codec"`
	BitrateBonus    int    `json:"bitrate_bonus" yaml:"bitrate_bonus"`
	SampleRateBonus int    `json:"sample_rate_bonus" yaml:"sample_rate_bonus"`
	Raw             int    `json:"raw" yaml:"raw"`
	Score           Score  `json:"score" yaml:"score"`
}

// Clamped reports whether the raw sum fell outside the score bounds.
func (b Breakdown) Clamped() bool {
	return b.Raw != int(b.Score)
}

func (b Breakdown) String() string {
	return fmt.Sprintf("base %d %+d bitrate %+d sample rate = %d", b.Base, b.BitrateBonus, b.SampleRateBonus, int(b.Score))
}

// Score returns the clamped quality for f. It is pure and never fails; the
// unknown sentinel is scored like any other fact.
func (s Scorer) Score(f probe.MediaFact) Score {
	return s.Explain(f).Score
}

// Explain computes the score for f and returns every component of it.
func (s Scorer) Explain(f probe.MediaFact) Breakdown {
	base, known := s.Codecs.Lookup(f.Codec)
	if !known {
		base = s.DefaultBase
	}
	b := Breakdown{
		Codec:           f.Codec,
		Base:            base,
		KnownCodec:      known,
		BitrateBonus:    s.Bitrate.Lookup(f.BitrateKbps),
		SampleRateBonus: s.SampleRate.Lookup(f.SampleRateHz),
	}
	b.Raw = b.Base + b.BitrateBonus + b.SampleRateBonus
	b.Score = clamp(b.Raw)
	return b
}

// Validate checks both bonus tables.
func (s Scorer) Validate() error {
	if err := s.Bitrate.Validate(); err != nil {
		return fmt.Errorf("bitrate: %w", err)
	}
	if err := s.SampleRate.Validate(); err != nil {
		return fmt.Errorf("sample rate: %w", err)
	}
	return nil
}

// Compute scores f with the built-in tables.
func Compute(f probe.MediaFact) Score {
	return defaultScorer.Score(f)
}

var defaultScorer = Default()

func clamp(raw int) Score {
	switch {
	case raw < MinScore:
		return MinScore
	case raw > MaxScore:
		return MaxScore
	default:
		return Score(raw)
	}
}
