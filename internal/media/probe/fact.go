package probe

import "fmt"

// UnknownCodec is the codec value used when no audio stream was found.
const UnknownCodec = "unknown"

// MediaFact is the encoding information extracted for one file.
type MediaFact struct {
	Codec        string `json:"codec" yaml:"codec"`
	BitrateKbps  int    `json:"bitrate_kbps" yaml:"bitrate_kbps"`
	SampleRateHz int    `json:"sample_rate_hz" yaml:"sample_rate_hz"`
}

// Unknown returns the "could not determine" sentinel.
func Unknown() MediaFact {
	return MediaFact{Codec: UnknownCodec}
}

// IsUnknown reports whether f is the full-unknown sentinel. A detected codec
// literally named "unknown" with a non-zero bitrate or sample rate is not.
func (f MediaFact) IsUnknown() bool {
	return f.Codec == UnknownCodec && f.BitrateKbps == 0 && f.SampleRateHz == 0
}

func (f MediaFact) String() string {
	return fmt.Sprintf("codec=%s bitrate=%dkb/s sample_rate=%dHz", f.Codec, f.BitrateKbps, f.SampleRateHz)
}
