package wire

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/viper"

	"github.com/mithrel/showcase/internal/config"
	"github.com/mithrel/showcase/internal/content"
	"github.com/mithrel/showcase/internal/db"
	"github.com/mithrel/showcase/internal/document"
	synsvc "github.com/mithrel/showcase/internal/sync"
)

// App aggregates the major services for easy injection.
type App struct {
	Cfg      *viper.Viper
	Log      *log.Logger
	Store    db.Store
	Content  *content.Client
	Renderer *document.Renderer
	Syncer   *synsvc.Service

	closer io.Closer
}

// BuildApp wires dependencies with the provided config.
func BuildApp(ctx context.Context, v *viper.Viper) (*App, error) {
	logger := log.New(os.Stderr, "showcase ", log.LstdFlags)
	dsn := v.GetString("db_url")
	if dsn == "" {
		dsn = config.ResolveDBPath(v)
	}
	store, closer, err := db.Open(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	client := content.New(v)
	return &App{
		Cfg:      v,
		Log:      logger,
		Store:    store,
		Content:  client,
		Renderer: &document.Renderer{Log: logger},
		Syncer:   synsvc.New(client, store, logger),
		closer:   closer,
	}, nil
}

// Close releases the catalog.
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}
