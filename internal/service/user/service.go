// Package user exposes read access to users.
package user

import (
	"context"

	"github.com/tinoosan/ncnews/internal/news"
	"github.com/tinoosan/ncnews/internal/slug"
)

type Repo interface {
	ListUsers(ctx context.Context) ([]news.User, error)
	GetUserByUsername(ctx context.Context, username string) (news.User, error)
}

type Service interface {
	List(ctx context.Context) ([]news.User, error)
	ByUsername(ctx context.Context, username string) (news.User, error)
}

type service struct {
	repo Repo
}

func New(repo Repo) Service { return &service{repo: repo} }

func (s *service) List(ctx context.Context) ([]news.User, error) {
	return s.repo.ListUsers(ctx)
}

// ByUsername looks a user up by exact username. Strings that cannot be
// usernames are rejected with errs.ErrInvalid before the store is asked.
func (s *service) ByUsername(ctx context.Context, username string) (news.User, error) {
	if err := slug.Check("username", username); err != nil {
		return news.User{}, err
	}
	return s.repo.GetUserByUsername(ctx, username)
}
