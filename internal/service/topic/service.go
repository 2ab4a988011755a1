// Package topic exposes read access to topics.
package topic

import (
	"context"

	"github.com/tinoosan/ncnews/internal/docid"
	"github.com/tinoosan/ncnews/internal/news"
)

type Repo interface {
	ListTopics(ctx context.Context) ([]news.Topic, error)
	GetTopic(ctx context.Context, id string) (news.Topic, error)
}

type Service interface {
	List(ctx context.Context) ([]news.Topic, error)
	Get(ctx context.Context, id string) (news.Topic, error)
}

type service struct {
	repo Repo
}

func New(repo Repo) Service { return &service{repo: repo} }

func (s *service) List(ctx context.Context) ([]news.Topic, error) {
	return s.repo.ListTopics(ctx)
}

func (s *service) Get(ctx context.Context, id string) (news.Topic, error) {
	id, err := docid.Parse(id)
	if err != nil {
		return news.Topic{}, err
	}
	return s.repo.GetTopic(ctx, id)
}
