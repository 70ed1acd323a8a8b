package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mithrel/showcase/internal/site"
)

func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the site and JSON API from the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			if addr == "" {
				addr = app.Cfg.GetString("http_addr")
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := site.NewServer(app.Store, app.Renderer, app.Cfg.GetString("site.title"), app.Log)
			return site.ListenAndServe(ctx, site.ServeConfig{
				Addr: addr,
				TLS: site.TLSConfig{
					Domain:     app.Cfg.GetString("tls.domain"),
					Email:      app.Cfg.GetString("tls.email"),
					StorageDir: app.Cfg.GetString("tls.storage_dir"),
					CertFile:   app.Cfg.GetString("tls.cert_file"),
					KeyFile:    app.Cfg.GetString("tls.key_file"),
				},
				HTTP3: app.Cfg.GetBool("tls.http3"),
				Log:   app.Log,
			}, srv.Router())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to http_addr)")
	return cmd
}
