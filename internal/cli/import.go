package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mithrel/showcase/internal/db"
	"github.com/mithrel/showcase/pkg/api"
)

func newProjectsImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [file|-]",
		Short: "Import projects from JSON (array or NDJSON)",
		Long: `Import projects into the catalog.

Input is the output of "projects list -o json" or "-o ndjson": a JSON array of
projects or one project per line. Existing projects are updated in place.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			var in io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			projects, err := decodeProjects(in)
			if err != nil {
				return fmt.Errorf("decode projects: %w", err)
			}
			counts := map[db.PutResult]int{}
			skipped := 0
			for _, p := range projects {
				res, err := app.Store.PutProject(cmd.Context(), p)
				if err != nil {
					app.Log.Printf("import: skip %q: %v", p.Slug, err)
					skipped++
					continue
				}
				counts[res]++
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported: %d created, %d updated, %d unchanged\nSkipped: %d\n",
				counts[db.PutCreated], counts[db.PutUpdated], counts[db.PutUnchanged], skipped)
			return nil
		},
	}
	return cmd
}

func decodeProjects(r io.Reader) ([]api.Project, error) {
	br := bufio.NewReader(r)
	first, err := peekFirstNonSpace(br)
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(br)
	if first == '[' {
		var arr []api.Project
		if err := dec.Decode(&arr); err != nil {
			return nil, err
		}
		return arr, nil
	}
	var out []api.Project
	for {
		var p api.Project
		if err := dec.Decode(&p); err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return nil, err
		}
		out = append(out, p)
	}
}

func peekFirstNonSpace(r *bufio.Reader) (byte, error) {
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		if b == ' ' || b == '\n' || b == '\r' || b == '\t' {
			continue
		}
		if err := r.UnreadByte(); err != nil {
			return 0, err
		}
		return b, nil
	}
}
