package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"audioquality/internal/deps"
	"audioquality/internal/library"
	"audioquality/internal/logging"
	"audioquality/internal/services"
)

type scoreReport struct {
	RunID   string           `json:"run_id" yaml:"run_id"`
	Files   int              `json:"files" yaml:"files"`
	Failed  int              `json:"failed" yaml:"failed"`
	Results []library.Result `json:"results" yaml:"results"`
}

func newScoreCommand(ctx *commandContext) *cobra.Command {
	var (
		format    string
		explain   bool
		policy    string
		workers   int
		noComment bool
		write     bool
	)

	cmd := &cobra.Command{
		Use:   "score <path>...",
		Short: "Probe files, score them and set the quality tags",
		Long: "Probe each file with ffmpeg, score it and run the tagging hooks.\n" +
			"Directories are searched recursively using the library extensions and globs.\n" +
			"Tags are kept in memory unless --write persists them to sidecar files.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outFormat, err := parseFormat(format)
			if err != nil {
				return err
			}
			if workers < 0 {
				return fmt.Errorf("--workers must not be negative, got %d", workers)
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, runID, err := ctx.newLogger()
			if err != nil {
				return err
			}
			runCtx := services.WithRunID(cmd.Context(), runID)
			logger = logging.WithContext(runCtx, logging.NewComponentLogger(logger, "cli"))

			pipe, err := buildPipeline(cfg, logger, pipelineOptions{policy: policy, noComment: noComment})
			if err != nil {
				return err
			}

			if version, err := deps.FFmpegVersion(runCtx, pipe.prober.Binary()); err != nil {
				logging.WarnWithContext(logger, "ffmpeg self-test failed", "ffmpeg.self_test_failed",
					logging.Error(err),
					logging.String(logging.FieldErrorHint, "install ffmpeg or set probe.ffmpeg_binary"),
					logging.String(logging.FieldImpact, "every file will be tagged as unanalyzed"),
				)
			} else {
				logger.Info("ffmpeg available", logging.String("version", version))
			}

			paths, err := library.Discover(runCtx, args, library.FilterFromConfig(cfg.Library))
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No media files found")
				return nil
			}

			opts := library.Options{
				Workers: cfg.Library.Workers,
				Write:   write,
			}
			if workers > 0 {
				opts.Workers = workers
			}
			if cfg.Library.Sidecar || write {
				opts.Sidecar = library.NewSidecar(cfg.Library.SidecarSuffix)
			}
			results := library.NewRunner(pipe.registry, opts, logger).Run(runCtx, paths)

			report := scoreReport{RunID: runID, Files: len(results), Results: results}
			for _, res := range results {
				if res.Failed() {
					report.Failed++
				}
			}

			if outFormat == formatTable {
				fmt.Fprintln(cmd.OutOrStdout(), renderScoreTable(report, explain, write, shouldColorize(cmd.OutOrStdout())))
			} else if err := writeStructured(cmd, outFormat, report); err != nil {
				return err
			}
			if report.Failed > 0 {
				return errReported
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "Output format: table, json or yaml")
	cmd.Flags().BoolVar(&explain, "explain", false, "Show how each score was computed")
	cmd.Flags().StringVar(&policy, "policy", "", "Override tagging.failure_policy (zero or score)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Files to probe in parallel; 0 uses library.workers")
	cmd.Flags().BoolVar(&noComment, "no-comment", false, "Do not write the human-readable comment tag")
	cmd.Flags().BoolVar(&write, "write", false, "Persist tags to sidecar files and run post-save hooks")
	return cmd
}

func renderScoreTable(report scoreReport, explain, write, colorize bool) string {
	headers := []string{"File", "Codec", "Bitrate", "Sample Rate", "Quality"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight}
	if explain {
		headers = append(headers, "Breakdown")
		aligns = append(aligns, alignLeft)
	}
	headers = append(headers, "Status")
	aligns = append(aligns, alignLeft)

	cwd, _ := os.Getwd()
	rows := make([][]string, 0, len(report.Results))
	for _, res := range report.Results {
		row := []string{displayPath(cwd, res.Path)}
		if a := res.Assessment; a != nil {
			row = append(row,
				a.Fact.Codec,
				kbps(a.Fact.BitrateKbps),
				hz(a.Fact.SampleRateHz),
				renderScore(a.Quality, colorize),
			)
			if explain {
				row = append(row, a.Breakdown.String())
			}
		} else {
			row = append(row, "-", "-", "-", "-")
			if explain {
				row = append(row, "-")
			}
		}
		row = append(row, resultStatus(res, write))
		rows = append(rows, row)
	}

	footer := fmt.Sprintf("%d file(s), %d failed", report.Files, report.Failed)
	return renderTable(headers, rows, aligns, footer)
}

func resultStatus(res library.Result, write bool) string {
	switch {
	case res.Failed():
		return "error: " + res.Error
	case res.Assessment != nil && res.Assessment.Unknown:
		return "unanalyzed"
	case res.Saved:
		return "saved"
	case write:
		return "not saved"
	default:
		return "ok"
	}
}

func displayPath(cwd, path string) string {
	if cwd == "" {
		return path
	}
	if rel, err := filepath.Rel(cwd, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}

func kbps(v int) string {
	if v == 0 {
		return "-"
	}
	return strconv.Itoa(v) + " kb/s"
}

func hz(v int) string {
	if v == 0 {
		return "-"
	}
	return strconv.Itoa(v) + " Hz"
}
