package cli

import (
	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/mithrel/showcase/internal/wire"
	"github.com/mithrel/showcase/pkg/api"
)

const maxSlugCompletions = 20

func newCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "completion",
		Short:       "Generate shell completion scripts",
		Annotations: map[string]string{noApp: "true"},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "bash",
		Short: "Generate Bash completions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "zsh",
		Short: "Generate Zsh completions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "fish",
		Short: "Generate Fish completions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
		},
	})

	return cmd
}

// completeSlugs offers catalog slugs for the first argument, best fuzzy
// matches first.
func completeSlugs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	app, ok := cmd.Context().Value(appKey).(*wire.App)
	if !ok {
		return nil, cobra.ShellCompDirectiveError
	}
	projects, err := app.Store.ListProjects(cmd.Context(), api.ListQuery{})
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	slugs := make([]string, 0, len(projects))
	for _, p := range projects {
		slugs = append(slugs, p.Slug)
	}
	return scoreCompletions(toComplete, slugs, maxSlugCompletions), cobra.ShellCompDirectiveNoFileComp
}

// scoreCompletions returns up to n candidates matching input, best first.
// An empty input returns the candidates unchanged.
func scoreCompletions(input string, candidates []string, n int) []string {
	if input == "" {
		if n > 0 && len(candidates) > n {
			return candidates[:n]
		}
		return candidates
	}
	matches := fuzzy.Find(input, candidates)
	if n > 0 && len(matches) > n {
		matches = matches[:n]
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Str
	}
	return out
}
