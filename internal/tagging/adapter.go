package tagging

import (
	"context"
	"fmt"
	"strconv"

	"audioquality/internal/diagnostics"
	"audioquality/internal/host"
	"audioquality/internal/media/probe"
	"audioquality/internal/media/quality"
	"audioquality/internal/services"
)

const component = "tagging"

// Diagnostic event kinds reported by the adapter.
const (
	EventScored      = "tagging.scored"
	EventUnanalyzed  = "tagging.unanalyzed"
	EventWriteFailed = "tagging.write_failed"
	EventFileSaved   = "tagging.file_saved"
	EventAlbumLoaded = "tagging.album_loaded"
	EventNoMetadata  = "tagging.no_metadata"
)

// Hook names used when registering with a host.Registry.
const (
	HookScore      = "audio_quality.score"
	HookSaveReport = "audio_quality.post_save"
	HookAlbum      = "audio_quality.album"
)

// FactProber is the subset of *probe.Prober the adapter needs.
type FactProber interface {
	Probe(ctx context.Context, path string) probe.MediaFact
}

// AssessmentRecorder is implemented by files that want to keep the
// assessment computed for them.
type AssessmentRecorder interface {
	RecordAssessment(Assessment)
}

// Assessment is the outcome of scoring one file.
type Assessment struct {
	Path      string            `json:"path" yaml:"path"`
	Fact      probe.MediaFact   `json:"fact" yaml:"fact"`
	Breakdown quality.Breakdown `json:"breakdown" yaml:"breakdown"`
	// Quality is the value written to the quality tag after the failure
	// policy was applied.
	Quality int    `json:"quality" yaml:"quality"`
	Unknown bool   `json:"unknown" yaml:"unknown"`
	Comment string `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// Adapter connects probing and scoring to host lifecycle callbacks.
type Adapter struct {
	prober FactProber
	scorer quality.Scorer
	opts   Options
	sink   diagnostics.Sink
}

// New builds an Adapter. A nil sink discards diagnostics.
func New(prober FactProber, scorer quality.Scorer, opts Options, sink diagnostics.Sink) (*Adapter, error) {
	if prober == nil {
		return nil, services.Wrap(services.ErrConfiguration, component, "new adapter", "prober is required", nil)
	}
	if err := opts.Validate(); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, component, "new adapter", "invalid options", err)
	}
	if err := scorer.Validate(); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, component, "new adapter", "invalid score tables", err)
	}
	return &Adapter{
		prober: prober,
		scorer: scorer,
		opts:   opts.withDefaults(),
		sink:   diagnostics.OrDiscard(sink),
	}, nil
}

// Register installs the adapter's callbacks on reg.
func (a *Adapter) Register(reg *host.Registry) {
	reg.OnFileLoaded(HookScore, a.onFileLoaded)
	reg.OnFileSaved(HookSaveReport, a.onFileSaved)
	reg.OnAlbumMetadata(HookAlbum, a.onAlbumMetadata)
}

// Assess probes path and scores the result without touching any metadata.
func (a *Adapter) Assess(ctx context.Context, path string) Assessment {
	return a.Evaluate(path, a.prober.Probe(ctx, path))
}

// Evaluate scores an already probed fact for path and applies the failure
// policy.
func (a *Adapter) Evaluate(path string, fact probe.MediaFact) Assessment {
	breakdown := a.scorer.Explain(fact)
	assessment := Assessment{
		Path:      path,
		Fact:      fact,
		Breakdown: breakdown,
		Quality:   a.qualityFor(fact, breakdown.Score),
		Unknown:   fact.IsUnknown(),
	}
	if a.opts.WriteComment {
		assessment.Comment = fmt.Sprintf(a.opts.CommentFormat, assessment.Quality)
	}
	return assessment
}

// qualityFor applies the failure policy: under PolicyZero a file that could
// not be probed at all is tagged 0 instead of the unknown fact's score.
func (a *Adapter) qualityFor(fact probe.MediaFact, score quality.Score) int {
	if fact.IsUnknown() && a.opts.FailurePolicy == PolicyZero {
		return 0
	}
	return int(score)
}

func (a *Adapter) onFileLoaded(ctx context.Context, file host.File) error {
	path := file.Path()
	assessment := a.Assess(ctx, path)

	if assessment.Unknown {
		a.sink.Report(diagnostics.Event{
			Kind:      EventUnanalyzed,
			Severity:  diagnostics.SeverityWarn,
			Component: component,
			Path:      path,
			Message:   "could not analyze audio quality",
			Fields: map[string]any{
				"quality":    assessment.Quality,
				"policy":     a.opts.FailurePolicy,
				"error_hint": "run audioquality probe on the file for details",
				"impact":     "file tagged with the failure-policy quality",
			},
		})
	} else {
		a.sink.Report(diagnostics.Event{
			Kind:      EventScored,
			Severity:  diagnostics.SeverityInfo,
			Component: component,
			Path:      path,
			Message:   "quality scored",
			Fields: map[string]any{
				"codec":          assessment.Fact.Codec,
				"bitrate_kbps":   assessment.Fact.BitrateKbps,
				"sample_rate_hz": assessment.Fact.SampleRateHz,
				"quality":        assessment.Quality,
			},
		})
	}

	if recorder, ok := file.(AssessmentRecorder); ok {
		recorder.RecordAssessment(assessment)
	}

	meta := file.Metadata()
	if meta == nil {
		return a.writeFailed(path, a.opts.QualityKey, host.ErrNoMetadata)
	}
	if err := meta.Set(a.opts.QualityKey, strconv.Itoa(assessment.Quality)); err != nil {
		return a.writeFailed(path, a.opts.QualityKey, err)
	}
	if a.opts.WriteComment {
		if err := meta.Set(a.opts.CommentKey, assessment.Comment); err != nil {
			return a.writeFailed(path, a.opts.CommentKey, err)
		}
	}
	return nil
}

func (a *Adapter) writeFailed(path, key string, err error) error {
	a.sink.Report(diagnostics.Event{
		Kind:      EventWriteFailed,
		Severity:  diagnostics.SeverityError,
		Component: component,
		Path:      path,
		Message:   "could not set quality tags",
		Err:       err,
		Fields: map[string]any{
			"key":        key,
			"error_hint": "check that the host allows writing this tag",
		},
	})
	return services.Wrap(services.ErrValidation, component, "write tag", key, err)
}

func (a *Adapter) onFileSaved(_ context.Context, file host.File) error {
	meta := file.Metadata()
	if meta == nil {
		a.sink.Report(diagnostics.Event{
			Kind:      EventNoMetadata,
			Severity:  diagnostics.SeverityWarn,
			Component: component,
			Path:      file.Path(),
			Message:   "saved file has no metadata",
			Fields: map[string]any{
				"error_hint": "the host saved a file without a tag store",
				"impact":     "quality tags were not persisted",
			},
		})
		return nil
	}
	fields := make(map[string]any, len(meta.Keys()))
	for _, key := range meta.Keys() {
		if value, ok := meta.Get(key); ok {
			fields[key] = value
		}
	}
	a.sink.Report(diagnostics.Event{
		Kind:      EventFileSaved,
		Severity:  diagnostics.SeverityInfo,
		Component: component,
		Path:      file.Path(),
		Message:   "file saved",
		Fields:    fields,
	})
	return nil
}

func (a *Adapter) onAlbumMetadata(_ context.Context, album host.Album) error {
	fields := map[string]any{"album": album.Title}
	if album.Artist != "" {
		fields["artist"] = album.Artist
	}
	a.sink.Report(diagnostics.Event{
		Kind:      EventAlbumLoaded,
		Severity:  diagnostics.SeverityInfo,
		Component: component,
		Message:   "album metadata loaded",
		Fields:    fields,
	})
	return nil
}
