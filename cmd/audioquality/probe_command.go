package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"audioquality/internal/logging"
	"audioquality/internal/media/probe"
	"audioquality/internal/tagging"
)

type probeReport struct {
	Path       string             `json:"path" yaml:"path"`
	Details    probe.Details      `json:"details" yaml:"details"`
	Assessment tagging.Assessment `json:"assessment" yaml:"assessment"`
	Error      string             `json:"error,omitempty" yaml:"error,omitempty"`
}

func newProbeCommand(ctx *commandContext) *cobra.Command {
	var format string
	var policy string

	cmd := &cobra.Command{
		Use:   "probe <file>",
		Short: "Show the facts ffmpeg reports for a file and how they score",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outFormat, err := parseFormat(format)
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, _, err := ctx.newLogger()
			if err != nil {
				return err
			}
			pipe, err := buildPipeline(cfg, logging.NewComponentLogger(logger, "cli"), pipelineOptions{policy: policy})
			if err != nil {
				return err
			}

			path, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}
			report := probeReport{Path: path}
			details, inspectErr := pipe.prober.Inspect(cmd.Context(), path)
			if inspectErr != nil {
				report.Error = inspectErr.Error()
				details = probe.Details{MediaFact: probe.Unknown()}
			}
			report.Details = details
			report.Assessment = pipe.adapter.Evaluate(path, details.MediaFact)

			if outFormat != formatTable {
				return writeStructured(cmd, outFormat, report)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderProbeTable(report, shouldColorize(cmd.OutOrStdout())))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "Output format: table, json or yaml")
	cmd.Flags().StringVar(&policy, "policy", "", "Override tagging.failure_policy (zero or score)")
	return cmd
}

func renderProbeTable(report probeReport, colorize bool) string {
	d := report.Details
	b := report.Assessment.Breakdown
	missing := "-"
	if len(d.Missing) > 0 {
		missing = strings.Join(d.Missing, ", ")
	}
	rows := [][]string{
		{"File", report.Path},
		{"Codec", d.Codec},
		{"Bitrate", kbps(d.BitrateKbps)},
		{"Sample rate", hz(d.SampleRateHz)},
		{"Container bitrate", kbps(d.ContainerKbps)},
		{"Missing fields", missing},
		{"Codec base", fmt.Sprintf("%d (%s)", b.Base, knownLabel(b.KnownCodec))},
		{"Bitrate bonus", fmt.Sprintf("%+d", b.BitrateBonus)},
		{"Sample rate bonus", fmt.Sprintf("%+d", b.SampleRateBonus)},
		{"Raw score", strconv.Itoa(b.Raw)},
		{"Quality tag", renderScore(report.Assessment.Quality, colorize)},
		{"Unanalyzed", yesNo(report.Assessment.Unknown)},
	}
	if report.Assessment.Comment != "" {
		rows = append(rows, []string{"Comment tag", report.Assessment.Comment})
	}
	if report.Error != "" {
		rows = append(rows, []string{"Error", report.Error})
	}
	return renderTable([]string{"Field", "Value"}, rows, nil, "")
}

func knownLabel(known bool) string {
	if known {
		return "listed codec"
	}
	return "default"
}
