// Package comment implements the comment rules: comments hang off an existing
// article, carry a votes counter, and are the only documents that can be deleted.
package comment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tinoosan/ncnews/internal/docid"
	"github.com/tinoosan/ncnews/internal/errs"
	"github.com/tinoosan/ncnews/internal/news"
	"github.com/tinoosan/ncnews/internal/service/relation"
)

type Repo interface {
	CommentsByArticle(ctx context.Context, articleID string) ([]news.Comment, error)
	GetComment(ctx context.Context, id string) (news.Comment, error)
}

type Writer interface {
	CreateComment(ctx context.Context, c news.Comment) (news.Comment, error)
	AdjustCommentVotes(ctx context.Context, id string, delta int) (news.Comment, error)
	DeleteComment(ctx context.Context, id string) error
}

type Service interface {
	ListByArticle(ctx context.Context, articleID string) ([]news.Comment, error)
	Create(ctx context.Context, articleID string, c news.Comment) (news.Comment, error)
	Vote(ctx context.Context, id string, v news.Vote) (news.Comment, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo    Repo
	writer  Writer
	parents *relation.Resolver
	now     func() time.Time
}

func New(repo Repo, writer Writer, parents *relation.Resolver) Service {
	return &service{repo: repo, writer: writer, parents: parents, now: func() time.Time { return time.Now().UTC() }}
}

func (s *service) ListByArticle(ctx context.Context, articleID string) ([]news.Comment, error) {
	parent, err := s.parents.Resolve(ctx, articleID, news.KindArticle)
	if err != nil {
		return nil, err
	}
	return s.repo.CommentsByArticle(ctx, parent.ID)
}

func (s *service) Create(ctx context.Context, articleID string, c news.Comment) (news.Comment, error) {
	parent, err := s.parents.Resolve(ctx, articleID, news.KindArticle)
	if err != nil {
		return news.Comment{}, err
	}
	if strings.TrimSpace(c.Body) == "" {
		return news.Comment{}, fmt.Errorf("%w: body is required", errs.ErrInvalid)
	}
	if c.CreatedBy != "" {
		author, err := s.parents.Resolve(ctx, c.CreatedBy, news.KindUser)
		if err != nil {
			return news.Comment{}, fmt.Errorf("%w: created_by: %v", errs.ErrInvalid, err)
		}
		c.CreatedBy = author.ID
	}
	c.ID = docid.New()
	c.BelongsTo = parent.ID
	c.Votes = 0
	c.CreatedAt = s.now()
	return s.writer.CreateComment(ctx, c)
}

func (s *service) Vote(ctx context.Context, id string, v news.Vote) (news.Comment, error) {
	id, err := docid.Parse(id)
	if err != nil {
		return news.Comment{}, err
	}
	if v.Delta() == 0 {
		return s.repo.GetComment(ctx, id)
	}
	return s.writer.AdjustCommentVotes(ctx, id, v.Delta())
}

// Delete removes a comment. A second delete of the same id is errs.ErrNotFound.
func (s *service) Delete(ctx context.Context, id string) error {
	id, err := docid.Parse(id)
	if err != nil {
		return err
	}
	return s.writer.DeleteComment(ctx, id)
}
