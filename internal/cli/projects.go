package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mithrel/showcase/internal/present"
	"github.com/mithrel/showcase/internal/present/tui"
	"github.com/mithrel/showcase/pkg/api"
)

func newProjectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"p"},
		Short:   "Inspect the project catalog",
	}
	cmd.AddCommand(newProjectsListCmd())
	cmd.AddCommand(newProjectsShowCmd())
	cmd.AddCommand(newProjectsSearchCmd())
	cmd.AddCommand(newProjectsImportCmd())
	return cmd
}

func newProjectsListCmd() *cobra.Command {
	var category string
	var limit int
	var outputMode string
	var noHeaders bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog projects, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			if limit <= 0 {
				limit = app.Cfg.GetInt("export.page_size")
			}
			opts, err := presentOptions(app, outputMode, !noHeaders)
			if err != nil {
				return err
			}
			projects, err := app.Store.ListProjects(cmd.Context(), api.ListQuery{Category: category, Limit: limit})
			if err != nil {
				return err
			}
			if opts.Mode == present.ModeTUI {
				opts.Load = app.Store.GetProject
				return present.RenderProjects(cmd.Context(), cmd.OutOrStdout(), projects, opts)
			}
			return withPager(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), func(w io.Writer) error {
				return present.RenderProjects(cmd.Context(), w, projects, opts)
			})
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "only list projects in this category")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum projects to list (0 uses export.page_size)")
	cmd.Flags().StringVarP(&outputMode, "output", "o", "plain", "output mode: plain|json|ndjson|tui")
	cmd.Flags().BoolVar(&noHeaders, "noheaders", false, "hide column headers (plain/tui)")
	_ = cmd.RegisterFlagCompletionFunc("output", completeOutputs("plain", "json", "ndjson", "tui"))
	return cmd
}

func newProjectsShowCmd() *cobra.Command {
	var outputMode string
	var remote, byID bool
	cmd := &cobra.Command{
		Use:               "show <slug|id>",
		Short:             "Show one project with its rendered documents",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeSlugs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			opts, err := presentOptions(app, outputMode, true)
			if err != nil {
				return err
			}
			opts.JSONIndent = true
			if byID && !remote {
				return fmt.Errorf("--id requires --remote")
			}
			var p api.Project
			switch {
			case byID:
				p, err = app.Content.ProjectByID(cmd.Context(), args[0])
			case remote:
				p, err = app.Content.ProjectBySlug(cmd.Context(), args[0])
			default:
				p, err = app.Store.GetProject(cmd.Context(), args[0])
			}
			if err != nil {
				return fmt.Errorf("project %s: %w", args[0], err)
			}
			return withPager(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), func(w io.Writer) error {
				return present.RenderProject(cmd.Context(), w, p, opts)
			})
		},
	}
	cmd.Flags().StringVarP(&outputMode, "output", "o", "pretty", "output mode: plain|pretty|json|ndjson")
	cmd.Flags().BoolVar(&remote, "remote", false, "fetch from the content store instead of the catalog")
	cmd.Flags().BoolVar(&byID, "id", false, "treat the argument as a content store id (with --remote)")
	_ = cmd.RegisterFlagCompletionFunc("output", completeOutputs("plain", "pretty", "json", "ndjson"))
	return cmd
}

func newProjectsSearchCmd() *cobra.Command {
	var category string
	var outputMode string
	var noHeaders bool
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Fuzzy search projects by title, slug and tech stack",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			opts, err := presentOptions(app, outputMode, !noHeaders)
			if err != nil {
				return err
			}
			all, err := app.Store.ListProjects(cmd.Context(), api.ListQuery{})
			if err != nil {
				return err
			}
			matches := tui.FilterProjects(all, category, args[0])
			if opts.Mode == present.ModeTUI {
				opts.Load = app.Store.GetProject
			}
			return present.RenderProjects(cmd.Context(), cmd.OutOrStdout(), matches, opts)
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "only search this category")
	cmd.Flags().StringVarP(&outputMode, "output", "o", "plain", "output mode: plain|json|ndjson|tui")
	cmd.Flags().BoolVar(&noHeaders, "noheaders", false, "hide column headers (plain/tui)")
	_ = cmd.RegisterFlagCompletionFunc("output", completeOutputs("plain", "json", "ndjson", "tui"))
	return cmd
}
