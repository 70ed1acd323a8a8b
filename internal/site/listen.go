package site

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/quic-go/quic-go/http3"
)

// ServeConfig describes the listeners of the live site.
type ServeConfig struct {
	Addr  string
	TLS   TLSConfig
	HTTP3 bool
	Log   *log.Logger
}

// ListenAndServe serves handler until ctx is done. With TLS configured it
// serves HTTPS on Addr, answers ACME challenges on :80 and, when HTTP3 is
// set, also serves HTTP/3 over QUIC on the same address.
func ListenAndServe(ctx context.Context, cfg ServeConfig, handler http.Handler) error {
	logger := cfg.Log
	if logger == nil {
		logger = log.Default()
	}
	if cfg.HTTP3 && !cfg.TLS.Enabled() {
		return errors.New("http3 requires tls")
	}

	srv := &http.Server{Addr: cfg.Addr, Handler: handler, ReadHeaderTimeout: 10 * time.Second}
	var servers []func() error
	var closers []func() error

	if !cfg.TLS.Enabled() {
		servers = append(servers, srv.ListenAndServe)
		closers = append(closers, srv.Close)
		logger.Printf("serve: http on %s", cfg.Addr)
	} else {
		tlsConf, challenge, err := BuildTLS(ctx, cfg.TLS)
		if err != nil {
			return fmt.Errorf("tls: %w", err)
		}
		if cfg.HTTP3 {
			h3 := &http3.Server{Addr: cfg.Addr, Handler: handler, TLSConfig: http3.ConfigureTLSConfig(tlsConf.Clone())}
			srv.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_ = h3.SetQUICHeaders(w.Header())
				handler.ServeHTTP(w, r)
			})
			servers = append(servers, h3.ListenAndServe)
			closers = append(closers, h3.Close)
			logger.Printf("serve: http3 on %s", cfg.Addr)
		}
		srv.TLSConfig = tlsConf
		servers = append(servers, func() error { return srv.ListenAndServeTLS("", "") })
		closers = append(closers, srv.Close)
		logger.Printf("serve: https on %s", cfg.Addr)
		if challenge != nil {
			redirect := &http.Server{Addr: ":80", Handler: challenge, ReadHeaderTimeout: 10 * time.Second}
			servers = append(servers, redirect.ListenAndServe)
			closers = append(closers, redirect.Close)
		}
	}

	errc := make(chan error, len(servers))
	for _, run := range servers {
		go func(run func() error) { errc <- run() }(run)
	}
	select {
	case <-ctx.Done():
		for _, c := range closers {
			_ = c()
		}
		return nil
	case err := <-errc:
		for _, c := range closers {
			_ = c()
		}
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
