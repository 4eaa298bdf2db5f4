package probe

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Field names reported in Details.Missing.
const (
	FieldCodec      = "codec"
	FieldBitrate    = "bitrate"
	FieldSampleRate = "sample_rate"
)

var (
	// The codec token stops at the first comma or at the end of the line.
	reAudioCodec    = regexp.MustCompile(`Audio: ([^,\r\n]+)`)
	reBitrate       = regexp.MustCompile(`(\d+) kb/s`)
	reSampleRate    = regexp.MustCompile(`(\d+) Hz`)
	reContainerRate = regexp.MustCompile(`bitrate: (\d+) kb/s`)
)

// Details is the full parse result for one diagnostic stream.
type Details struct {
	MediaFact `yaml:",inline"`
	// ContainerKbps is the overall bitrate from the "Duration: ..., bitrate:"
	// line, or 0. It is informational; scoring uses MediaFact.BitrateKbps.
	ContainerKbps int `json:"container_kbps" yaml:"container_kbps"`
	// Missing lists the fields that fell back to their defaults.
	Missing []string `json:"missing,omitempty" yaml:"missing,omitempty"`
}

// Parse extracts a MediaFact from ffmpeg's diagnostic output. Each field is
// matched independently; absent fields keep their sentinel value.
func Parse(stderr string) MediaFact {
	return ParseDetails(stderr).MediaFact
}

// ParseDetails is Parse plus container bitrate and missing-field tracking.
func ParseDetails(stderr string) Details {
	details := Details{MediaFact: Unknown()}

	if m := reAudioCodec.FindStringSubmatch(stderr); m != nil {
		codec := strings.TrimSpace(cases.Lower(language.Und).String(m[1]))
		if codec != "" {
			details.Codec = codec
		}
	}
	if details.Codec == UnknownCodec {
		details.Missing = append(details.Missing, FieldCodec)
	}

	var ok bool
	if details.BitrateKbps, ok = firstInt(reBitrate, stderr); !ok {
		details.Missing = append(details.Missing, FieldBitrate)
	}
	if details.SampleRateHz, ok = firstInt(reSampleRate, stderr); !ok {
		details.Missing = append(details.Missing, FieldSampleRate)
	}
	details.ContainerKbps, _ = firstInt(reContainerRate, stderr)
	return details
}

// firstInt returns the first capture of re as an int. Values that overflow
// count as missing.
func firstInt(re *regexp.Regexp, s string) (int, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// lastLine returns the final non-blank line of s, which is where ffmpeg puts
// its fatal error message.
func lastLine(s string) string {
	lines := strings.Split(s, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
