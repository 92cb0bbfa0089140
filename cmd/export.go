package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"graphdraw/diagram"
	"graphdraw/export"
)

func exportCmd(g *globals) *cobra.Command {
	var (
		format      string
		output      string
		inputFormat string
	)

	cmd := &cobra.Command{
		Use:   "export [drawing.json|drawing.yaml|-]",
		Short: "Convert a saved drawing to another format",
		Long: "Convert a drawing saved as JSON or YAML to text, png, json, yaml, dot or mermaid.\n" +
			"Reads stdin when no file (or -) is given. Without --format the format is taken\n" +
			"from the extension of --output, falling back to the text report.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := "-"
			if len(args) == 1 {
				source = args[0]
			}

			d, err := readDrawing(cmd.InOrStdin(), source, inputFormat)
			if err != nil {
				return err
			}

			f, err := resolveFormat(format, output)
			if err != nil {
				return err
			}

			sizer, err := g.cfg.Sizer()
			if err != nil {
				return err
			}
			exporter, err := export.NewExporter(f, g.exportOptions(sizer))
			if err != nil {
				return err
			}

			data, err := exporter.Export(d)
			if err != nil {
				return fmt.Errorf("%s export failed: %w", exporter.GetFormatName(), err)
			}

			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			g.log.Info("drawing exported",
				zap.String("format", string(f)),
				zap.String("source", source),
				zap.String("path", output))
			good.Fprintf(cmd.ErrOrStderr(), "✓ %s written to %s (%d vertices, %d edges)\n",
				exporter.GetFormatName(), output, len(d.Nodes), len(d.Edges))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format (see `graphdraw formats`)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&inputFormat, "input-format", "", "Input format for stdin: json or yaml")
	return cmd
}

// readDrawing decodes the drawing at source, or stdin for "-". YAML is
// chosen by extension or by inputFormat.
func readDrawing(stdin io.Reader, source, inputFormat string) (*diagram.Drawing, error) {
	var yamlInput bool
	switch strings.ToLower(inputFormat) {
	case "yaml", "yml":
		yamlInput = true
	case "json":
	case "":
		ext := strings.ToLower(filepath.Ext(source))
		yamlInput = ext == ".yaml" || ext == ".yml"
	default:
		return nil, fmt.Errorf("unknown input format: %s", inputFormat)
	}

	var (
		data []byte
		err  error
	)
	if source == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read drawing: %w", err)
	}

	return diagram.Decode(data, yamlInput)
}

// resolveFormat picks the export format from the flag or the output file
// extension.
func resolveFormat(format, output string) (export.Format, error) {
	if format != "" {
		return export.ParseFormat(format)
	}
	if ext := strings.TrimPrefix(filepath.Ext(output), "."); ext != "" {
		if f, err := export.ParseFormat(ext); err == nil {
			return f, nil
		}
	}
	return export.FormatText, nil
}
