package relation_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tinoosan/ncnews/internal/docid"
	"github.com/tinoosan/ncnews/internal/errs"
	"github.com/tinoosan/ncnews/internal/news"
	"github.com/tinoosan/ncnews/internal/seed"
	"github.com/tinoosan/ncnews/internal/service/relation"
	"github.com/tinoosan/ncnews/internal/storage/memory"
)

func TestResolve(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	docs, err := seed.Load(ctx, store, seed.Default())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	r := relation.New(store)

	cases := []struct {
		name string
		id   string
		kind news.Kind
		want error
	}{
		{"topic ok", docs.Topics[0].ID, news.KindTopic, nil},
		{"article ok", docs.Articles[1].ID, news.KindArticle, nil},
		{"user ok", docs.Users[2].ID, news.KindUser, nil},
		{"malformed", "ejfjefbejhbfhjebfj", news.KindTopic, errs.ErrMalformedID},
		{"unknown", docid.New(), news.KindTopic, errs.ErrNotFound},
		{"article id as topic", docs.Articles[0].ID, news.KindTopic, errs.ErrNotFound},
		{"comment id as article", docs.Comments[0].ID, news.KindArticle, errs.ErrNotFound},
		{"topic id as article", docs.Topics[0].ID, news.KindArticle, errs.ErrNotFound},
		{"comments own nothing", docs.Comments[0].ID, news.KindComment, errs.ErrInvalid},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p, err := r.Resolve(ctx, c.id, c.kind)
			if c.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if p.ID != c.id || p.Kind != c.kind {
					t.Fatalf("unexpected parent: %+v", p)
				}
				return
			}
			if !errors.Is(err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, err)
			}
		})
	}
}

func TestResolve_CanonicalID(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	docs, err := seed.Load(ctx, store, seed.Default())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	want := docs.Articles[3].ID
	p, err := relation.New(store).Resolve(ctx, strings.ToUpper(want), news.KindArticle)
	if err != nil {
		t.Fatalf("resolve uppercase id: %v", err)
	}
	if p.ID != want {
		t.Fatalf("expected lowercase id %s, got %s", want, p.ID)
	}
}
