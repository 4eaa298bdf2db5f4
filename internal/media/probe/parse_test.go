package probe_test

import (
	"strings"
	"testing"

	"audioquality/internal/media/probe"
)

const flacStderr = `Input #0, flac, from 'track.flac':
  Metadata:
    ARTIST          : Someone
  Duration: 00:03:12.40, start: 0.000000, bitrate: 912 kb/s
  Stream #0:0: Audio: flac, 44100 Hz, stereo, s16
At least one output file must be specified
`

const mp3Stderr = `Input #0, mp3, from 'song.mp3':
  Duration: 00:04:01.12, start: 0.025057, bitrate: 320 kb/s
  Stream #0:0: Audio: MP3 (mp3float), 48000 Hz, stereo, fltp, 320 kb/s
At least one output file must be specified
`

func TestParseExtractsFactsRegardlessOfLineOrder(t *testing.T) {
	orders := []string{
		"Stream #0:0: Audio: aac, 48000 Hz, stereo\nDuration: 00:01:00.00, bitrate: 128 kb/s\n",
		"Duration: 00:01:00.00, bitrate: 128 kb/s\nStream #0:0: Audio: aac, 48000 Hz, stereo\n",
	}
	for _, stderr := range orders {
		fact := probe.Parse(stderr)
		want := probe.MediaFact{Codec: "aac", BitrateKbps: 128, SampleRateHz: 48000}
		if fact != want {
			t.Fatalf("Parse(%q) = %+v, want %+v", stderr, fact, want)
		}
	}
}

func TestParseRealisticOutput(t *testing.T) {
	cases := []struct {
		name          string
		stderr        string
		want          probe.MediaFact
		containerKbps int
	}{
		{"flac", flacStderr, probe.MediaFact{Codec: "flac", BitrateKbps: 912, SampleRateHz: 44100}, 912},
		{"mp3 keeps full token lower-cased", mp3Stderr, probe.MediaFact{Codec: "mp3 (mp3float)", BitrateKbps: 320, SampleRateHz: 48000}, 320},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			details := probe.ParseDetails(tc.stderr)
			if details.MediaFact != tc.want {
				t.Fatalf("got %+v, want %+v", details.MediaFact, tc.want)
			}
			if details.ContainerKbps != tc.containerKbps {
				t.Fatalf("container bitrate = %d, want %d", details.ContainerKbps, tc.containerKbps)
			}
			if len(details.Missing) != 0 {
				t.Fatalf("expected no missing fields, got %v", details.Missing)
			}
		})
	}
}

func TestParseNoMatchesReturnsUnknown(t *testing.T) {
	details := probe.ParseDetails("something went wrong\n")
	if !details.IsUnknown() {
		t.Fatalf("expected full-unknown fact, got %+v", details.MediaFact)
	}
	if got := strings.Join(details.Missing, ","); got != "codec,bitrate,sample_rate" {
		t.Fatalf("unexpected missing fields: %q", got)
	}
	if probe.Parse("") != probe.Unknown() {
		t.Fatal("empty stream should parse to Unknown()")
	}
}

func TestParseFieldsAreIndependent(t *testing.T) {
	details := probe.ParseDetails("Stream #0:0: Audio: opus, stereo\n")
	if details.Codec != "opus" || details.BitrateKbps != 0 || details.SampleRateHz != 0 {
		t.Fatalf("unexpected fact: %+v", details.MediaFact)
	}
	if got := strings.Join(details.Missing, ","); got != "bitrate,sample_rate" {
		t.Fatalf("unexpected missing fields: %q", got)
	}
	if details.IsUnknown() {
		t.Fatal("a detected codec is not the unknown sentinel")
	}
}

func TestParseCodecStopsAtLineEnd(t *testing.T) {
	fact := probe.Parse("Stream #0:0: Audio: WavPack\nOther: 96000 Hz, x\n")
	if fact.Codec != "wavpack" {
		t.Fatalf("expected codec token limited to its line, got %q", fact.Codec)
	}
	if fact.SampleRateHz != 96000 {
		t.Fatalf("expected sample rate from a later line, got %d", fact.SampleRateHz)
	}
}

func TestParseTakesFirstNumericMatch(t *testing.T) {
	fact := probe.Parse("bitrate: 1411 kb/s\nAudio: pcm_s16le, 44100 Hz, 2 channels, 1411 kb/s\nAudio: aac, 22050 Hz, 96 kb/s\n")
	if fact.BitrateKbps != 1411 || fact.SampleRateHz != 44100 || fact.Codec != "pcm_s16le" {
		t.Fatalf("expected first matches, got %+v", fact)
	}
}

func TestParseOverflowCountsAsMissing(t *testing.T) {
	details := probe.ParseDetails("Audio: flac, 99999999999999999999999 Hz\n")
	if details.SampleRateHz != 0 {
		t.Fatalf("expected overflowing sample rate to fall back to 0, got %d", details.SampleRateHz)
	}
	if !strings.Contains(strings.Join(details.Missing, ","), "sample_rate") {
		t.Fatalf("expected sample_rate in missing fields, got %v", details.Missing)
	}
}

func TestUnknownSentinelIsDistinctFromCodecNamedUnknown(t *testing.T) {
	if !probe.Unknown().IsUnknown() {
		t.Fatal("Unknown() must report IsUnknown")
	}
	detected := probe.MediaFact{Codec: "unknown", BitrateKbps: 128}
	if detected.IsUnknown() {
		t.Fatal("a codec named unknown with a bitrate is not the sentinel")
	}
}
