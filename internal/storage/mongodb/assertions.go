package mongodb

import (
	"github.com/tinoosan/ncnews/internal/seed"
	"github.com/tinoosan/ncnews/internal/service/article"
	"github.com/tinoosan/ncnews/internal/service/comment"
	"github.com/tinoosan/ncnews/internal/service/relation"
	"github.com/tinoosan/ncnews/internal/service/topic"
	"github.com/tinoosan/ncnews/internal/service/user"
)

var (
	_ relation.Lookup = (*Store)(nil)
	_ topic.Repo      = (*Store)(nil)
	_ article.Repo    = (*Store)(nil)
	_ article.Writer  = (*Store)(nil)
	_ comment.Repo    = (*Store)(nil)
	_ comment.Writer  = (*Store)(nil)
	_ user.Repo       = (*Store)(nil)
	_ seed.Writer     = (*Store)(nil)
)
