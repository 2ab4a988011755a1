package comment_test

import (
	"context"
	"errors"
	"testing"

	"github.com/tinoosan/ncnews/internal/errs"
	"github.com/tinoosan/ncnews/internal/news"
	"github.com/tinoosan/ncnews/internal/seed"
	"github.com/tinoosan/ncnews/internal/service/comment"
	"github.com/tinoosan/ncnews/internal/service/relation"
	"github.com/tinoosan/ncnews/internal/storage/memory"
)

func setup(t *testing.T) (comment.Service, seed.Docs) {
	t.Helper()
	store := memory.New()
	docs, err := seed.Load(context.Background(), store, seed.Default())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return comment.New(store, store, relation.New(store)), docs
}

func TestListAndCreate(t *testing.T) {
	svc, docs := setup(t)
	ctx := context.Background()
	list, err := svc.ListByArticle(ctx, docs.Articles[2].ID)
	if err != nil || len(list) != 2 {
		t.Fatalf("list: %d %v", len(list), err)
	}
	c, err := svc.Create(ctx, docs.Articles[2].ID, news.Comment{Body: "This is my new comment"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.Body != "This is my new comment" || c.Votes != 0 || c.BelongsTo != docs.Articles[2].ID {
		t.Fatalf("unexpected comment: %+v", c)
	}
	if _, err := svc.Create(ctx, docs.Topics[0].ID, news.Comment{Body: "x"}); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("topic id as article expected not found, got %v", err)
	}
	if _, err := svc.Create(ctx, "deedefrgefergerevreg", news.Comment{Body: "x"}); !errors.Is(err, errs.ErrMalformedID) {
		t.Fatalf("expected malformed, got %v", err)
	}
	if _, err := svc.Create(ctx, docs.Articles[0].ID, news.Comment{}); !errors.Is(err, errs.ErrInvalid) {
		t.Fatalf("expected invalid, got %v", err)
	}
	if _, err := svc.ListByArticle(ctx, docs.Comments[0].ID); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("comment id as article expected not found, got %v", err)
	}
}

func TestVoteAndDelete(t *testing.T) {
	svc, docs := setup(t)
	ctx := context.Background()
	target := docs.Comments[0]
	got, err := svc.Vote(ctx, target.ID, news.VoteUp)
	if err != nil || got.Votes != target.Votes+1 {
		t.Fatalf("vote up: %d %v", got.Votes, err)
	}
	if err := svc.Delete(ctx, target.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(ctx, target.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("re-delete expected not found, got %v", err)
	}
	if err := svc.Delete(ctx, "frfrfrfegrtgrgtrghtg"); !errors.Is(err, errs.ErrMalformedID) {
		t.Fatalf("expected malformed, got %v", err)
	}
	if err := svc.Delete(ctx, docs.Topics[0].ID); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("topic id as comment expected not found, got %v", err)
	}
}
