// Package seed loads fixture documents into a store for local development and tests.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/tinoosan/ncnews/internal/docid"
	"github.com/tinoosan/ncnews/internal/news"
	"github.com/tinoosan/ncnews/internal/slug"
)

// Writer is the set of create operations a store must offer to be seeded.
type Writer interface {
	CreateTopic(ctx context.Context, t news.Topic) (news.Topic, error)
	CreateUser(ctx context.Context, u news.User) (news.User, error)
	CreateArticle(ctx context.Context, a news.Article) (news.Article, error)
	CreateComment(ctx context.Context, c news.Comment) (news.Comment, error)
}

// Data describes fixtures by natural keys; ids are assigned while loading.
type Data struct {
	Topics   []news.Topic
	Users    []news.User
	Articles []ArticleFixture
}

// ArticleFixture refers to its topic by slug and its author by username.
type ArticleFixture struct {
	Title     string
	Body      string
	Topic     string
	CreatedBy string
	Votes     int
	Comments  []CommentFixture
}

// CommentFixture refers to its author by username.
type CommentFixture struct {
	Body      string
	CreatedBy string
	Votes     int
}

// Docs holds the stored documents in creation order.
type Docs struct {
	Topics   []news.Topic
	Users    []news.User
	Articles []news.Article
	Comments []news.Comment
}

// Load writes d through w: topics, users, articles, then comments.
func Load(ctx context.Context, w Writer, d Data) (Docs, error) {
	var out Docs
	topicIDs := make(map[string]string, len(d.Topics))
	for _, t := range d.Topics {
		if t.Slug == "" {
			t.Slug = slug.Slugify(t.Title)
		}
		if err := slug.Check("topic slug", t.Slug); err != nil {
			return Docs{}, fmt.Errorf("seed topic %q: %w", t.Title, err)
		}
		t.ID = docid.New()
		saved, err := w.CreateTopic(ctx, t)
		if err != nil {
			return Docs{}, fmt.Errorf("seed topic %q: %w", t.Slug, err)
		}
		topicIDs[saved.Slug] = saved.ID
		out.Topics = append(out.Topics, saved)
	}
	userIDs := make(map[string]string, len(d.Users))
	for _, u := range d.Users {
		if err := slug.Check("username", u.Username); err != nil {
			return Docs{}, fmt.Errorf("seed user: %w", err)
		}
		u.ID = docid.New()
		saved, err := w.CreateUser(ctx, u)
		if err != nil {
			return Docs{}, fmt.Errorf("seed user %q: %w", u.Username, err)
		}
		userIDs[saved.Username] = saved.ID
		out.Users = append(out.Users, saved)
	}
	// Fixed base time keeps created_at ordering stable across runs.
	base := time.Date(2018, time.June, 1, 12, 0, 0, 0, time.UTC)
	step := 0
	for _, af := range d.Articles {
		topicID, ok := topicIDs[af.Topic]
		if !ok {
			return Docs{}, fmt.Errorf("seed article %q: unknown topic %q", af.Title, af.Topic)
		}
		a := news.Article{
			ID:        docid.New(),
			Title:     af.Title,
			Body:      af.Body,
			BelongsTo: topicID,
			Votes:     af.Votes,
			CreatedBy: userIDs[af.CreatedBy],
			CreatedAt: base.Add(time.Duration(step) * time.Minute),
		}
		step++
		saved, err := w.CreateArticle(ctx, a)
		if err != nil {
			return Docs{}, fmt.Errorf("seed article %q: %w", af.Title, err)
		}
		out.Articles = append(out.Articles, saved)
	}
	for i, af := range d.Articles {
		for _, cf := range af.Comments {
			c := news.Comment{
				ID:        docid.New(),
				Body:      cf.Body,
				BelongsTo: out.Articles[i].ID,
				Votes:     cf.Votes,
				CreatedBy: userIDs[cf.CreatedBy],
				CreatedAt: base.Add(time.Duration(step) * time.Minute),
			}
			step++
			saved, err := w.CreateComment(ctx, c)
			if err != nil {
				return Docs{}, fmt.Errorf("seed comment on %q: %w", af.Title, err)
			}
			out.Comments = append(out.Comments, saved)
		}
	}
	return out, nil
}
