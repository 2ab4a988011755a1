// Package article implements the article rules: every article is filed under an
// existing topic, starts with zero votes, and only changes through votes.
package article

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
	ListArticles(ctx context.Context) ([]news.Article, error)
	GetArticle(ctx context.Context, id string) (news.Article, error)
	ArticlesByTopic(ctx context.Context, topicID string) ([]news.Article, error)
}

type Writer interface {
	CreateArticle(ctx context.Context, a news.Article) (news.Article, error)
	// AdjustArticleVotes atomically adds delta to votes and returns the stored article.
	AdjustArticleVotes(ctx context.Context, id string, delta int) (news.Article, error)
}

type Service interface {
	List(ctx context.Context) ([]news.Article, error)
	Get(ctx context.Context, id string) (news.Article, error)
	ListByTopic(ctx context.Context, topicID string) ([]news.Article, error)
	Create(ctx context.Context, topicID string, a news.Article) (news.Article, error)
	Vote(ctx context.Context, id string, v news.Vote) (news.Article, error)
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

func (s *service) List(ctx context.Context) ([]news.Article, error) {
	return s.repo.ListArticles(ctx)
}

func (s *service) Get(ctx context.Context, id string) (news.Article, error) {
	id, err := docid.Parse(id)
	if err != nil {
		return news.Article{}, err
	}
	return s.repo.GetArticle(ctx, id)
}

// ListByTopic returns the articles of an existing topic.
func (s *service) ListByTopic(ctx context.Context, topicID string) ([]news.Article, error) {
	parent, err := s.parents.Resolve(ctx, topicID, news.KindTopic)
	if err != nil {
		return nil, err
	}
	return s.repo.ArticlesByTopic(ctx, parent.ID)
}

// Create files a new article under topicID. Title and body are required;
// CreatedBy, when set, must reference an existing user.
func (s *service) Create(ctx context.Context, topicID string, a news.Article) (news.Article, error) {
	parent, err := s.parents.Resolve(ctx, topicID, news.KindTopic)
	if err != nil {
		return news.Article{}, err
	}
	if strings.TrimSpace(a.Title) == "" || strings.TrimSpace(a.Body) == "" {
		return news.Article{}, fmt.Errorf("%w: title and body are required", errs.ErrInvalid)
	}
	if a.CreatedBy != "" {
		author, err := s.parents.Resolve(ctx, a.CreatedBy, news.KindUser)
		if err != nil {
			return news.Article{}, fmt.Errorf("%w: created_by: %v", errs.ErrInvalid, err)
		}
		a.CreatedBy = author.ID
	}
	a.ID = docid.New()
	a.BelongsTo = parent.ID
	a.Votes = 0
	a.CreatedAt = s.now()
	return s.writer.CreateArticle(ctx, a)
}

// Vote applies v to the article. VoteNone leaves the document untouched and
// returns it as stored.
func (s *service) Vote(ctx context.Context, id string, v news.Vote) (news.Article, error) {
	id, err := docid.Parse(id)
	if err != nil {
		return news.Article{}, err
	}
	if v.Delta() == 0 {
		return s.repo.GetArticle(ctx, id)
	}
	return s.writer.AdjustArticleVotes(ctx, id, v.Delta())
}
