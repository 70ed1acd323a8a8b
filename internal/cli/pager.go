package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mithrel/showcase/internal/present"
	"github.com/mithrel/showcase/internal/present/format"
	"github.com/mithrel/showcase/internal/wire"
)

const defaultPager = "less -FRSX"

// presentOptions builds presenter options for an --output value.
func presentOptions(app *wire.App, output string, headers bool) (present.Options, error) {
	mode, ok := present.ParseMode(strings.ToLower(output))
	if !ok {
		return present.Options{}, fmt.Errorf("invalid --output: %s", output)
	}
	return present.Options{
		Mode:     mode,
		Headers:  headers,
		Renderer: app.Renderer,
		Pretty: format.PrettyOptions{
			Style:    app.Cfg.GetString("render.style"),
			WordWrap: app.Cfg.GetInt("render.word_wrap"),
		},
	}, nil
}

func withPager(ctx context.Context, out, errOut io.Writer, write func(io.Writer) error) error {
	outFile, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(outFile.Fd())) {
		return write(out)
	}
	pager := os.Getenv("PAGER")
	if pager == "" {
		pager = defaultPager
	}
	cmd := exec.CommandContext(ctx, "sh", "-c", pager)
	cmd.Stdout = outFile
	if errFile, ok := errOut.(*os.File); ok {
		cmd.Stderr = errFile
	} else {
		cmd.Stderr = os.Stderr
	}
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return write(out)
	}
	if err := cmd.Start(); err != nil {
		return write(out)
	}
	writeErr := write(stdin)
	_ = stdin.Close()
	waitErr := cmd.Wait()
	if writeErr != nil {
		return writeErr
	}
	return waitErr
}

func completeOutputs(modes ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return modes, cobra.ShellCompDirectiveNoFileComp
	}
}
