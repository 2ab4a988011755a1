package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tinoosan/ncnews/internal/config"
	"github.com/tinoosan/ncnews/internal/httpapi"
	"github.com/tinoosan/ncnews/internal/seed"
	"github.com/tinoosan/ncnews/internal/storage/memory"
	"github.com/tinoosan/ncnews/internal/storage/mongodb"
	pgstore "github.com/tinoosan/ncnews/internal/storage/postgres"
)

// backend is what every storage implementation offers the commands.
type backend interface {
	httpapi.Store
	seed.Writer
	Close()
}

// persistent backends can be wiped and have a schema (tables or indexes) to apply.
type persistent interface {
	backend
	Reset(ctx context.Context) error
}

func openStore(ctx context.Context, cfg *config.ServerEnvironment) (backend, error) {
	switch cfg.Store {
	case config.StorePostgres:
		pg, err := pgstore.Open(ctx, cfg.DatabaseURL, pgstore.Options{
			MaxConns:       cfg.DBMaxConnections,
			MinConns:       cfg.DBMinConnections,
			ConnectRetries: cfg.DBConnectRetries,
		})
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return pg, nil
	case config.StoreMongoDB:
		mg, err := mongodb.Open(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.DBConnectRetries)
		if err != nil {
			return nil, fmt.Errorf("open mongodb: %w", err)
		}
		return mg, nil
	default:
		return memory.New(), nil
	}
}

// applySchema runs migrations (postgres) or index creation (mongodb).
func applySchema(ctx context.Context, b backend) error {
	switch s := b.(type) {
	case *pgstore.Store:
		return s.Migrate(ctx)
	case *mongodb.Store:
		return s.EnsureIndexes(ctx)
	default:
		return nil
	}
}

// seedIfEmpty loads the development fixtures when the store holds no topics.
func seedIfEmpty(ctx context.Context, l *slog.Logger, b backend) error {
	topics, err := b.ListTopics(ctx)
	if err != nil {
		return fmt.Errorf("check existing topics: %w", err)
	}
	if len(topics) > 0 {
		l.Info("dev seed skipped, store not empty", "topics", len(topics))
		return nil
	}
	docs, err := seed.Load(ctx, b, seed.Default())
	if err != nil {
		return err
	}
	logDevSeed(l, docs)
	return nil
}

// logDevSeed emits structured logs with useful IDs.
func logDevSeed(l *slog.Logger, docs seed.Docs) {
	topics := make(map[string]string, len(docs.Topics))
	for _, t := range docs.Topics {
		topics[t.Slug] = t.ID
	}
	articles := make([]string, 0, len(docs.Articles))
	for _, a := range docs.Articles {
		articles = append(articles, a.ID)
	}
	l.Info("dev seed loaded",
		"store", cfg.Store,
		"topics", topics,
		"article_ids", articles,
		"comments", len(docs.Comments),
		"users", len(docs.Users),
	)
}
