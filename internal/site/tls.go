package site

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/caddyserver/certmagic"
)

// TLSConfig selects how the live site obtains its certificate: from PEM
// files when CertFile is set, otherwise from ACME via CertMagic for Domain.
type TLSConfig struct {
	Domain     string
	Email      string
	StorageDir string // defaults to $XDG_CACHE_HOME/showcase/certmagic
	CertFile   string
	KeyFile    string
}

// Enabled reports whether any TLS source is configured.
func (c TLSConfig) Enabled() bool {
	return c.Domain != "" || c.CertFile != ""
}

// BuildTLS returns the server TLS config and, for ACME, the handler that
// answers HTTP-01 challenges on port 80.
func BuildTLS(ctx context.Context, cfg TLSConfig) (*tls.Config, http.Handler, error) {
	if cfg.CertFile != "" {
		tc, err := BuildFileTLS(cfg.CertFile, cfg.KeyFile)
		return tc, nil, err
	}
	return BuildCertMagicTLS(ctx, cfg)
}

// BuildCertMagicTLS provisions or loads certificates for cfg.Domain.
func BuildCertMagicTLS(ctx context.Context, cfg TLSConfig) (*tls.Config, http.Handler, error) {
	if cfg.Domain == "" {
		return nil, nil, errors.New("domain is required")
	}
	if cfg.StorageDir == "" {
		cfg.StorageDir = defaultCertDir()
	}
	if err := os.MkdirAll(cfg.StorageDir, 0o700); err != nil {
		return nil, nil, fmt.Errorf("cert storage: %w", err)
	}

	cm := certmagic.NewDefault()
	cm.Storage = &certmagic.FileStorage{Path: cfg.StorageDir}
	issuer := certmagic.NewACMEIssuer(cm, certmagic.ACMEIssuer{
		CA:     certmagic.LetsEncryptProductionCA,
		Email:  cfg.Email,
		Agreed: true,
	})
	cm.Issuers = []certmagic.Issuer{issuer}

	if err := cm.ManageSync(ctx, []string{cfg.Domain}); err != nil {
		return nil, nil, fmt.Errorf("manage certificate for %s: %w", cfg.Domain, err)
	}
	tc := cm.TLSConfig()
	tc.NextProtos = append([]string{"h2", "http/1.1"}, tc.NextProtos...)
	tc.MinVersion = tls.VersionTLS12
	return tc, issuer.HTTPChallengeHandler(http.HandlerFunc(redirectHTTPS)), nil
}

func defaultCertDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "showcase", "certmagic")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "showcase", "certmagic")
}

func redirectHTTPS(w http.ResponseWriter, r *http.Request) {
	target := "https://" + r.Host + r.URL.RequestURI()
	http.Redirect(w, r, target, http.StatusMovedPermanently)
}

// BuildFileTLS loads a certificate from PEM files.
func BuildFileTLS(certFile, keyFile string) (*tls.Config, error) {
	if certFile == "" || keyFile == "" {
		return nil, errors.New("both cert file and key file are required")
	}
	c, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, fmt.Errorf("load keypair: %w", err)
	}
	now := time.Now()
	for i, b := range c.Certificate {
		cert, err := x509.ParseCertificate(b)
		if err != nil {
			return nil, fmt.Errorf("invalid certificate at index %d: %w", i, err)
		}
		if now.Before(cert.NotBefore) {
			return nil, fmt.Errorf("certificate not yet valid (starts %s)", cert.NotBefore)
		}
		if now.After(cert.NotAfter) {
			return nil, fmt.Errorf("certificate expired on %s", cert.NotAfter)
		}
	}
	return &tls.Config{
		Certificates: []tls.Certificate{c},
		NextProtos:   []string{"h2", "http/1.1"},
		MinVersion:   tls.VersionTLS12,
	}, nil
}
