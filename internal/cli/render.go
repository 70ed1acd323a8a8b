package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mithrel/showcase/internal/present/format"
	"github.com/mithrel/showcase/pkg/api"
)

func newRenderCmd() *cobra.Command {
	var outFormat string
	var slug string
	var field string
	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Render a rich-text document",
		Long: `Render a rich-text document value.

The input is read from a file, or from stdin when the argument is "-" or
missing. JSON input is rendered as a document value; anything else is taken
as a literal string document. With --project the document is read from the
catalog instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			var value any
			if slug != "" {
				if len(args) > 0 {
					return fmt.Errorf("--project cannot be combined with an input file")
				}
				p, err := app.Store.GetProject(cmd.Context(), slug)
				if err != nil {
					return fmt.Errorf("project %s: %w", slug, err)
				}
				v, ok := p.Document(api.DocumentField(field))
				if !ok {
					return fmt.Errorf("unknown --field %q (want %s or %s)", field, api.FieldDevelopmentProcess, api.FieldDesignInspiration)
				}
				value = v
			} else {
				path := "-"
				if len(args) == 1 {
					path = args[0]
				}
				data, err := readInput(cmd.InOrStdin(), path)
				if err != nil {
					return err
				}
				value = decodeDocument(data)
			}

			el := app.Renderer.Render(value)
			w := cmd.OutOrStdout()
			switch strings.ToLower(outFormat) {
			case "html":
				if err := format.WriteHTML(w, el); err != nil {
					return err
				}
				_, err := io.WriteString(w, "\n")
				return err
			case "markdown", "md":
				_, err := io.WriteString(w, format.Markdown(el))
				return err
			case "pretty":
				return format.WritePrettyDocument(w, el, format.PrettyOptions{
					Style:    app.Cfg.GetString("render.style"),
					WordWrap: app.Cfg.GetInt("render.word_wrap"),
				})
			case "json":
				return format.WriteJSONElement(w, el, true)
			case "tree":
				return format.WriteTree(w, el)
			case "text", "plain":
				_, err := fmt.Fprintln(w, format.PlainText(el))
				return err
			}
			return fmt.Errorf("invalid --format: %s", outFormat)
		},
	}
	cmd.Flags().StringVarP(&outFormat, "format", "f", "html", "output format: html|markdown|pretty|json|tree|text")
	cmd.Flags().StringVar(&slug, "project", "", "render a document of this catalog project")
	cmd.Flags().StringVar(&field, "field", string(api.FieldDevelopmentProcess), "document field used with --project")
	_ = cmd.RegisterFlagCompletionFunc("format", completeOutputs("html", "markdown", "pretty", "json", "tree", "text"))
	_ = cmd.RegisterFlagCompletionFunc("project", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return completeSlugs(cmd, nil, toComplete)
	})
	_ = cmd.RegisterFlagCompletionFunc("field", completeOutputs(string(api.FieldDevelopmentProcess), string(api.FieldDesignInspiration)))
	return cmd
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

// decodeDocument parses JSON input, falling back to the raw text as a string
// document. Whitespace-only input is an absent document.
func decodeDocument(data []byte) any {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil
	}
	var v any
	if err := json.Unmarshal([]byte(trimmed), &v); err == nil {
		return v
	}
	return strings.TrimRight(string(data), "\r\n")
}
