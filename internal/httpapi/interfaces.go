package httpapi

import (
	"context"

	"github.com/tinoosan/ncnews/internal/service/article"
	"github.com/tinoosan/ncnews/internal/service/comment"
	"github.com/tinoosan/ncnews/internal/service/relation"
	"github.com/tinoosan/ncnews/internal/service/topic"
	"github.com/tinoosan/ncnews/internal/service/user"
)

// ReadyChecker is implemented by stores to indicate readiness.
type ReadyChecker interface {
	Ready(ctx context.Context) error
}

// Store composes everything the API reads and writes.
// It is a convenience union satisfied by every storage backend.
type Store interface {
	relation.Lookup
	topic.Repo
	article.Repo
	article.Writer
	comment.Repo
	comment.Writer
	user.Repo
	ReadyChecker
}
