package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	synsvc "github.com/mithrel/showcase/internal/sync"
)

func newSyncCmd() *cobra.Command {
	var outputMode string
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Mirror the content store into the local catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			rep, err := app.Syncer.SyncNow(cmd.Context())
			if err != nil {
				return fmt.Errorf("sync from %s: %w", app.Content.URL(), err)
			}
			if outputMode == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rep)
			}
			writeSyncReport(cmd.OutOrStdout(), rep)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputMode, "output", "o", "plain", "output mode: plain|json")
	_ = cmd.RegisterFlagCompletionFunc("output", completeOutputs("plain", "json"))
	return cmd
}

func writeSyncReport(w io.Writer, rep synsvc.Report) {
	if !rep.Changed() {
		fmt.Fprintf(w, "Catalog up to date (%d projects)\n", len(rep.Unchanged))
		return
	}
	line := func(label string, slugs []string) {
		if len(slugs) > 0 {
			fmt.Fprintf(w, "%-8s %s\n", label+":", strings.Join(slugs, ", "))
		}
	}
	line("created", rep.Created)
	line("updated", rep.Updated)
	line("removed", rep.Removed)
	fmt.Fprintf(w, "%d unchanged\n", len(rep.Unchanged))
}
