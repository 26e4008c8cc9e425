package cmd

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"github.com/csg33k/masterdash/internal/adapters/pdf"
	"github.com/csg33k/masterdash/internal/grid"
)

var (
	exportFlags viewFlags
	format      string
	out         string
	quoted      bool
)

var ExportCmd = &cobra.Command{
	Use:       "export <employees|customers>",
	Short:     "Write the filtered and sorted rows of a dataset to a CSV or PDF file",
	Args:      cobra.ExactArgs(1),
	ValidArgs: entities,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := open(cmd.Context())
		if err != nil {
			return err
		}
		defer s.close()
		view, err := loadEntity(cmd.Context(), s.data, s.loc, args[0], exportFlags.state())
		if err != nil {
			return err
		}

		var body []byte
		path := out
		switch format {
		case "csv":
			mode := grid.CSVReplaceCommas
			if quoted {
				mode = grid.CSVQuoted
			}
			if body, err = view.csv(mode); err != nil {
				return err
			}
			if path == "" {
				path = grid.CSVFileName(view.title)
			}
		case "pdf":
			var buf bytes.Buffer
			if err := (pdf.Generator{}).Generate(cmd.Context(), view.title, view.records, &buf); err != nil {
				return err
			}
			body = buf.Bytes()
			if path == "" {
				path = grid.PDFFileName(view.title)
			}
		default:
			return fmt.Errorf("unknown format %q, want csv or pdf", format)
		}

		if err := atomic.WriteFile(path, bytes.NewReader(body)); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		slog.Debug("exported", "path", path, "rows", len(view.records)-1)
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%d)\n", path, len(view.records)-1)
		return nil
	},
}

func init() {
	exportFlags.add(ExportCmd, false)
	ExportCmd.Flags().StringVar(&format, "format", "csv", "csv or pdf")
	ExportCmd.Flags().StringVarP(&out, "out", "o", "", "output file (default: derived from the title)")
	ExportCmd.Flags().BoolVar(&quoted, "quoted", false, "quote CSV fields instead of replacing commas")
}
