package probe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os/exec"
	"strings"
	"time"

	"audioquality/internal/diagnostics"
	"audioquality/internal/services"
)

const (
	component = "probe"

	// DefaultBinary is the probing tool resolved from PATH.
	DefaultBinary = "ffmpeg"
	// DefaultTimeout bounds a single ffmpeg invocation.
	DefaultTimeout = 30 * time.Second
)

// Diagnostic event kinds reported by the prober.
const (
	EventFailed    = "probe.failed"
	EventParseMiss = "probe.parse_miss"
	EventCompleted = "probe.completed"
)

// Runner executes the probing tool and returns what it wrote to stderr.
type Runner interface {
	Run(ctx context.Context, binary string, args ...string) (stderr []byte, err error)
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, binary string, args ...string) ([]byte, error)

// Run calls f.
func (f RunnerFunc) Run(ctx context.Context, binary string, args ...string) ([]byte, error) {
	return f(ctx, binary, args...)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, binary string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Stdout = io.Discard
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stderr.Bytes(), err
}

// Prober runs ffmpeg against media files. It holds no per-file state and is
// safe for concurrent use.
type Prober struct {
	binary  string
	timeout time.Duration
	runner  Runner
	sink    diagnostics.Sink
}

// Option configures a Prober.
type Option func(*Prober)

// WithBinary overrides the ffmpeg executable.
func WithBinary(binary string) Option {
	return func(p *Prober) {
		if b := strings.TrimSpace(binary); b != "" {
			p.binary = b
		}
	}
}

// WithTimeout bounds each invocation; zero disables the limit.
func WithTimeout(timeout time.Duration) Option {
	return func(p *Prober) {
		if timeout >= 0 {
			p.timeout = timeout
		}
	}
}

// WithRunner replaces the subprocess runner, mainly for tests.
func WithRunner(runner Runner) Option {
	return func(p *Prober) {
		if runner != nil {
			p.runner = runner
		}
	}
}

// WithSink routes diagnostics to sink.
func WithSink(sink diagnostics.Sink) Option {
	return func(p *Prober) {
		p.sink = diagnostics.OrDiscard(sink)
	}
}

// New constructs a Prober with defaults applied before opts.
func New(opts ...Option) *Prober {
	p := &Prober{
		binary:  DefaultBinary,
		timeout: DefaultTimeout,
		runner:  execRunner{},
		sink:    diagnostics.Discard,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Binary returns the configured ffmpeg executable.
func (p *Prober) Binary() string {
	return p.binary
}

// Probe returns the MediaFact for path. It never fails: invocation problems
// yield Unknown() and are reported to the sink, and fields missing from the
// diagnostic stream keep their sentinel values.
func (p *Prober) Probe(ctx context.Context, path string) MediaFact {
	started := time.Now()
	details, err := p.Inspect(ctx, path)
	if err != nil {
		p.sink.Report(diagnostics.Event{
			Kind:      EventFailed,
			Severity:  diagnostics.SeverityError,
			Component: component,
			Path:      path,
			Message:   "probe failed; quality facts unknown",
			Err:       err,
			Fields: map[string]any{
				"binary":     p.binary,
				"error_kind": services.Kind(err),
				"error_hint": hintFor(err),
			},
		})
		return Unknown()
	}

	if len(details.Missing) > 0 {
		p.sink.Report(diagnostics.Event{
			Kind:      EventParseMiss,
			Severity:  diagnostics.SeverityWarn,
			Component: component,
			Path:      path,
			Message:   "ffmpeg output lacked some audio fields",
			Fields: map[string]any{
				"missing":    strings.Join(details.Missing, ","),
				"error_hint": "confirm the file has an audio stream",
				"impact":     "missing fields score with their lowest bonus",
			},
		})
	}
	p.sink.Report(diagnostics.Event{
		Kind:      EventCompleted,
		Severity:  diagnostics.SeverityDebug,
		Component: component,
		Path:      path,
		Message:   "probe completed",
		Fields: map[string]any{
			"codec":          details.Codec,
			"bitrate_kbps":   details.BitrateKbps,
			"sample_rate_hz": details.SampleRateHz,
			"container_kbps": details.ContainerKbps,
			"elapsed":        time.Since(started),
		},
	})
	return details.MediaFact
}

// Inspect runs ffmpeg once and parses its diagnostic stream.
//
// ffmpeg exits non-zero whenever no output file is given, so a non-zero exit
// is only a failure when nothing usable was written to stderr.
func (p *Prober) Inspect(ctx context.Context, path string) (Details, error) {
	if strings.TrimSpace(path) == "" {
		return Details{}, services.Wrap(services.ErrValidation, component, "inspect", "empty path", nil)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	stderr, runErr := p.runner.Run(ctx, p.binary, "-hide_banner", "-nostdin", "-i", path)
	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return Details{}, services.Wrap(services.ErrTimeout, component, "run ffmpeg",
				fmt.Sprintf("no result within %s", p.timeout), ctxErr)
		}
		return Details{}, services.Wrap(services.ErrTransient, component, "run ffmpeg", "canceled", ctxErr)
	}

	output := string(stderr)
	if runErr != nil {
		var exitErr *exec.ExitError
		switch {
		case errors.Is(runErr, exec.ErrNotFound), errors.Is(runErr, fs.ErrNotExist):
			return Details{}, services.Wrap(services.ErrNotFound, component, "run ffmpeg",
				fmt.Sprintf("binary %q not found", p.binary), runErr)
		case !errors.As(runErr, &exitErr):
			return Details{}, services.Wrap(services.ErrExternalTool, component, "run ffmpeg", "could not start", runErr)
		case strings.TrimSpace(output) == "":
			return Details{}, services.Wrap(services.ErrExternalTool, component, "run ffmpeg", "no diagnostic output", runErr)
		}
	}

	details := ParseDetails(output)
	if runErr != nil && details.IsUnknown() {
		return Details{}, services.Wrap(services.ErrExternalTool, component, "read media", lastLine(output), runErr)
	}
	return details, nil
}

func hintFor(err error) string {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return "install ffmpeg or set probe.ffmpeg_binary"
	case errors.Is(err, services.ErrTimeout):
		return "raise probe.timeout_seconds or check the file's storage"
	case errors.Is(err, services.ErrValidation):
		return "pass a file path"
	default:
		return "run ffmpeg -i on the file to see the full error"
	}
}
