package main

import (
	"log/slog"
	"strings"

	"audioquality/internal/config"
	"audioquality/internal/diagnostics"
	"audioquality/internal/host"
	"audioquality/internal/logging"
	"audioquality/internal/media/probe"
	"audioquality/internal/media/quality"
	"audioquality/internal/tagging"
)

type pipelineOptions struct {
	policy    string
	noComment bool
}

type pipeline struct {
	prober   *probe.Prober
	adapter  *tagging.Adapter
	registry *host.Registry
	sink     diagnostics.Sink
}

// buildPipeline wires the prober, scorer and tagging adapter into a fresh
// registry, routing diagnostics to logger.
func buildPipeline(cfg *config.Config, logger *slog.Logger, opts pipelineOptions) (*pipeline, error) {
	sink := logging.NewDiagnosticSink(logger)
	prober := probe.New(
		probe.WithBinary(cfg.FFmpegBinary()),
		probe.WithTimeout(cfg.ProbeTimeout()),
		probe.WithSink(sink),
	)

	tagOpts := tagging.OptionsFromConfig(cfg.Tagging)
	if policy := strings.ToLower(strings.TrimSpace(opts.policy)); policy != "" {
		tagOpts.FailurePolicy = policy
	}
	if opts.noComment {
		tagOpts.WriteComment = false
	}
	adapter, err := tagging.New(prober, quality.Default(), tagOpts, sink)
	if err != nil {
		return nil, err
	}

	registry := host.NewRegistry()
	adapter.Register(registry)
	return &pipeline{
		prober:   prober,
		adapter:  adapter,
		registry: registry,
		sink:     sink,
	}, nil
}
