package quality

import (
	"errors"
	"fmt"
	"strings"
)

// CodecTable maps a lower-cased codec token to its base score.
type CodecTable map[string]int

// Lookup returns the base score for codec and whether it is listed.
func (t CodecTable) Lookup(codec string) (int, bool) {
	base, ok := t[strings.ToLower(strings.TrimSpace(codec))]
	return base, ok
}

// BonusRow awards Bonus to values at or above Threshold.
type BonusRow struct {
	Threshold int `json:"threshold" yaml:"threshold"`
	Bonus     int `json:"bonus" yaml:"bonus"`
}

// BonusTable is scanned in order; the first row whose threshold the value
// meets wins. Rows are descending and the last row has threshold 0.
type BonusTable []BonusRow

// Lookup returns the bonus for value. Values below every threshold, which
// only happens with negative input, get the last row's bonus.
func (t BonusTable) Lookup(value int) int {
	for _, row := range t {
		if value >= row.Threshold {
			return row.Bonus
		}
	}
	if len(t) == 0 {
		return 0
	}
	return t[len(t)-1].Bonus
}

// Validate checks that thresholds strictly descend and end with a 0 row.
func (t BonusTable) Validate() error {
	if len(t) == 0 {
		return errors.New("bonus table is empty")
	}
	for i := 1; i < len(t); i++ {
		if t[i].Threshold >= t[i-1].Threshold {
			return fmt.Errorf("bonus table row %d: threshold %d does not descend from %d", i, t[i].Threshold, t[i-1].Threshold)
		}
	}
	if last := t[len(t)-1].Threshold; last != 0 {
		return fmt.Errorf("bonus table must end with a 0 threshold, got %d", last)
	}
	return nil
}

// DefaultBase is the base score for codecs missing from the codec table.
const DefaultBase = 40

// DefaultCodecs returns the built-in codec base scores.
func DefaultCodecs() CodecTable {
	return CodecTable{
		"flac": 100,
		"wav":  100,
		"alac": 100,
		"ape":  100,
		"wv":   100,
		"mp3":  60,
		"aac":  80,
		"ogg":  75,
		"opus": 85,
		"wma":  70,
	}
}

// DefaultBitrate returns the built-in bitrate bonus table (kb/s).
func DefaultBitrate() BonusTable {
	return BonusTable{
		{Threshold: 320, Bonus: 30},
		{Threshold: 256, Bonus: 20},
		{Threshold: 192, Bonus: 10},
		{Threshold: 128, Bonus: 0},
		{Threshold: 0, Bonus: -20},
	}
}

// DefaultSampleRate returns the built-in sample-rate bonus table (Hz).
func DefaultSampleRate() BonusTable {
	return BonusTable{
		{Threshold: 48000, Bonus: 5},
		{Threshold: 44100, Bonus: 0},
		{Threshold: 0, Bonus: -10},
	}
}
