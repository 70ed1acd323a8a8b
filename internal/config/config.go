package config

import (
	"context"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// applyDefaults seeds Viper with defaults defined in GetConfigOptions.
// This centralizes default values and descriptions in one place.
func applyDefaults(v *viper.Viper) {
	for _, o := range GetConfigOptions() {
		v.SetDefault(o.Key, o.Default)
	}
}

// Load resolves configuration with precedence: defaults < file < env.
// The provided Viper instance is mutated with defaults, file contents, and env.
func Load(ctx context.Context, v *viper.Viper) error {
	// Configure Viper search paths. If SetConfigFile was provided upstream,
	// it takes precedence; these paths are harmless fallbacks.
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("config")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "showcase"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "showcase"))
		}
		v.AddConfigPath(".")
	}

	// Apply centralized defaults (lowest precedence)
	applyDefaults(v)

	// A missing file is fine; a broken one is not.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return err
		}
	}

	// Environment variables: SHOWCASE_* (highest among these sources)
	v.SetEnvPrefix("showcase")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Normalize a few dependent values post-merge
	if v.GetString("data_dir") == "" {
		v.Set("data_dir", defaultDataDir())
	}
	if strings.TrimSpace(v.GetString("site.output_dir")) == "" {
		v.Set("site.output_dir", "public")
	}
	return nil
}

// defaultDataDir resolves default data dir: $XDG_DATA_HOME/showcase or ~/.local/share/showcase
func defaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "showcase")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "showcase")
}

// DefaultConfigPath resolves the standard config.toml location.
func DefaultConfigPath() string {
	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		home, _ := os.UserHomeDir()
		xdg = filepath.Join(home, ".config")
	}
	return filepath.Join(xdg, "showcase", "config.toml")
}

type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// GetConfigOptions returns the default configuration options and their meanings.
func GetConfigOptions() []ConfigOption {
	return []ConfigOption{
		// Core paths
		{Key: "data_dir", Default: defaultDataDir(), Comment: "Directory for local state; catalog is data_dir/showcase.db"},
		{Key: "db_url", Default: "", Comment: "Catalog DSN override (sqlite://<path> or memory://); empty uses data_dir"},
		{Key: "http_addr", Default: ":8080", Comment: "HTTP listen address for `showcase serve`"},

		{Key: "content.url", Default: "http://localhost:3000/api/graphql", Comment: "GraphQL endpoint of the content store"},
		{Key: "content.token", Default: "", Comment: "Optional bearer token sent to the content store"},
		{Key: "content.timeout_seconds", Default: 20, Comment: "Request timeout for content store queries"},

		{Key: "site.title", Default: "Portfolio", Comment: "Site title shown in page headers"},
		{Key: "site.output_dir", Default: "public", Comment: "Output directory for `showcase build`"},

		{Key: "tls.domain", Default: "", Comment: "Serve HTTPS for this domain with automatic certificates (empty disables TLS)"},
		{Key: "tls.email", Default: "", Comment: "ACME account email"},
		{Key: "tls.storage_dir", Default: "", Comment: "Certificate storage; defaults to $XDG_CACHE_HOME/showcase/certmagic"},
		{Key: "tls.cert_file", Default: "", Comment: "PEM certificate to serve instead of ACME"},
		{Key: "tls.key_file", Default: "", Comment: "PEM private key matching tls.cert_file"},
		{Key: "tls.http3", Default: false, Comment: "Also serve HTTP/3 over QUIC when TLS is enabled"},

		{Key: "render.style", Default: "dark", Comment: "Glamour style for pretty terminal output (dark, light, dracula, notty)"},
		{Key: "render.word_wrap", Default: 0, Comment: "Word wrap for pretty output; 0 uses the terminal width"},

		{Key: "export.page_size", Default: 200, Comment: "Maximum projects listed by `projects list`"},
	}
}

// DefaultDBPath builds the default sqlite DB path from data_dir rules.
func DefaultDBPath() string {
	return filepath.Join(defaultDataDir(), "showcase.db")
}

// ResolveDBPath uses data_dir and defaults to return the sqlite DB file path.
func ResolveDBPath(v *viper.Viper) string {
	dir := v.GetString("data_dir")
	if dir == "" {
		dir = defaultDataDir()
	}
	// Expand ~ for convenience
	if len(dir) > 0 && dir[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, dir[1:])
		}
	}
	return filepath.Join(dir, "showcase.db")
}

// CheckConfigValidity reports every invalid setting at once.
func CheckConfigValidity(v *viper.Viper) error {
	var errs []error
	if strings.TrimSpace(v.GetString("data_dir")) == "" {
		errs = append(errs, errors.New("data_dir is required"))
	}
	if raw := strings.TrimSpace(v.GetString("content.url")); raw == "" {
		errs = append(errs, errors.New("content.url is required"))
	} else if u, err := url.Parse(raw); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, errors.New("content.url must be an http(s) url"))
	}
	if v.GetInt("content.timeout_seconds") <= 0 {
		errs = append(errs, errors.New("content.timeout_seconds must be greater than 0"))
	}
	if v.GetInt("export.page_size") <= 0 {
		errs = append(errs, errors.New("export.page_size must be greater than 0"))
	}
	if v.GetInt("render.word_wrap") < 0 {
		errs = append(errs, errors.New("render.word_wrap must not be negative"))
	}
	certFile, keyFile := strings.TrimSpace(v.GetString("tls.cert_file")), strings.TrimSpace(v.GetString("tls.key_file"))
	if (certFile == "") != (keyFile == "") {
		errs = append(errs, errors.New("tls.cert_file and tls.key_file must be set together"))
	}
	if v.GetBool("tls.http3") && strings.TrimSpace(v.GetString("tls.domain")) == "" && certFile == "" {
		errs = append(errs, errors.New("tls.http3 requires tls.domain or tls.cert_file"))
	}
	return errors.Join(errs...)
}
