package cli

import (
	"github.com/spf13/cobra"

	"github.com/mithrel/showcase/internal/present/tui"
	"github.com/mithrel/showcase/pkg/api"
)

func newBrowseCmd() *cobra.Command {
	var category string
	var remote bool
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse projects in an interactive table",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			opts, err := presentOptions(app, "tui", true)
			if err != nil {
				return err
			}
			var projects []api.Project
			load := tui.Loader(app.Store.GetProject)
			if remote {
				projects, err = app.Content.ProjectsBasic(cmd.Context())
				load = app.Content.ProjectBySlug
			} else {
				projects, err = app.Store.ListProjects(cmd.Context(), api.ListQuery{Category: category})
			}
			if err != nil {
				return err
			}
			if remote && category != "" {
				projects = tui.FilterProjects(projects, category, "")
			}
			return tui.Browse(cmd.Context(), projects, tui.Options{
				Renderer: opts.Renderer,
				Pretty:   opts.Pretty,
				Load:     load,
				Headers:  opts.Headers,
			})
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "only browse this category")
	cmd.Flags().BoolVar(&remote, "remote", false, "browse the content store instead of the catalog")
	return cmd
}
