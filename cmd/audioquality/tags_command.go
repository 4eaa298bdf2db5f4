package main

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"audioquality/internal/library"
)

func newTagsCommand(ctx *commandContext) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "tags <file>",
		Short: "Show the tags stored in a file's sidecar",
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
			path, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}

			store := library.NewSidecar(cfg.Library.SidecarSuffix)
			tags, err := store.Load(path)
			if err != nil {
				return err
			}
			if outFormat != formatTable {
				return writeStructured(cmd, outFormat, tags)
			}

			out := cmd.OutOrStdout()
			if len(tags) == 0 {
				fmt.Fprintf(out, "No tags stored for %s\n", path)
				return nil
			}
			keys := make([]string, 0, len(tags))
			for k := range tags {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			rows := make([][]string, 0, len(keys))
			for _, k := range keys {
				rows = append(rows, []string{k, tags[k]})
			}
			fmt.Fprintln(out, renderTable([]string{"Tag", "Value"}, rows, nil, store.PathFor(path)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "Output format: table, json or yaml")
	return cmd
}
