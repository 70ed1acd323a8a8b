package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mithrel/showcase/internal/site"
)

func newBuildCmd() *cobra.Command {
	var outDir string
	var syncFirst bool
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Write the static site from the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			if syncFirst {
				if _, err := app.Syncer.SyncNow(cmd.Context()); err != nil {
					return fmt.Errorf("sync: %w", err)
				}
			}
			if outDir == "" {
				outDir = app.Cfg.GetString("site.output_dir")
			}
			b := &site.Builder{
				Store:    app.Store,
				Renderer: app.Renderer,
				Title:    app.Cfg.GetString("site.title"),
				OutDir:   outDir,
				Log:      app.Log,
			}
			rep, err := b.Build(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s to %s\n", rep, outDir)
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "", "output directory (defaults to site.output_dir)")
	cmd.Flags().BoolVar(&syncFirst, "sync", false, "sync the catalog before building")
	return cmd
}
