// Package memory provides a simple in-memory implementation used for development and tests.
// It keeps code paths easy to follow while the postgres and mongodb stores serve real deployments.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/tinoosan/ncnews/internal/errs"
	"github.com/tinoosan/ncnews/internal/news"
)

// Store is an in-memory implementation of the repositories and writers used by the services.
// It is guarded by an RWMutex for concurrent reads/writes. Each collection keeps
// an insertion-order slice so lists come back in storage order.
type Store struct {
	mu sync.RWMutex

	topics     map[string]news.Topic
	topicOrder []string

	users     map[string]news.User
	userOrder []string
	// username -> user id
	usernames map[string]string

	articles     map[string]news.Article
	articleOrder []string

	comments     map[string]news.Comment
	commentOrder []string
}

// New constructs an empty in-memory store.
func New() *Store {
	s := &Store{}
	s.resetLocked()
	return s
}

// Reset drops every document.
func (s *Store) Reset() {
	s.mu.Lock()
	s.resetLocked()
	s.mu.Unlock()
}

func (s *Store) resetLocked() {
	s.topics = map[string]news.Topic{}
	s.topicOrder = nil
	s.users = map[string]news.User{}
	s.userOrder = nil
	s.usernames = map[string]string{}
	s.articles = map[string]news.Article{}
	s.articleOrder = nil
	s.comments = map[string]news.Comment{}
	s.commentOrder = nil
}

// Ready always succeeds; there is nothing to connect to.
func (s *Store) Ready(context.Context) error { return nil }

// Close is a no-op kept so every backend shares a lifecycle.
func (s *Store) Close() {}

// --- Topics ---

// ListTopics returns all topics in insertion order.
func (s *Store) ListTopics(_ context.Context) ([]news.Topic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]news.Topic, 0, len(s.topicOrder))
	for _, id := range s.topicOrder {
		out = append(out, s.topics[id])
	}
	return out, nil
}

// GetTopic returns a topic by id.
func (s *Store) GetTopic(_ context.Context, id string) (news.Topic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.topics[id]
	if !ok {
		return news.Topic{}, errs.ErrNotFound
	}
	return t, nil
}

// CreateTopic persists a new topic. Slugs are unique.
func (s *Store) CreateTopic(_ context.Context, t news.Topic) (news.Topic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.topics {
		if existing.Slug == t.Slug {
			return news.Topic{}, fmt.Errorf("%w: topic slug %q", errs.ErrConflict, t.Slug)
		}
	}
	if _, ok := s.topics[t.ID]; !ok {
		s.topicOrder = append(s.topicOrder, t.ID)
	}
	s.topics[t.ID] = t
	return t, nil
}

// --- Users ---

// ListUsers returns all users in insertion order.
func (s *Store) ListUsers(_ context.Context) ([]news.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]news.User, 0, len(s.userOrder))
	for _, id := range s.userOrder {
		out = append(out, s.users[id])
	}
	return out, nil
}

// GetUser returns a user by id.
func (s *Store) GetUser(_ context.Context, id string) (news.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return news.User{}, errs.ErrNotFound
	}
	return u, nil
}

// GetUserByUsername resolves a user via the unique username index.
func (s *Store) GetUserByUsername(_ context.Context, username string) (news.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usernames[username]
	if !ok {
		return news.User{}, errs.ErrNotFound
	}
	return s.users[id], nil
}

// CreateUser persists a new user.
func (s *Store) CreateUser(_ context.Context, u news.User) (news.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.usernames[u.Username]; taken {
		return news.User{}, fmt.Errorf("%w: username %q", errs.ErrConflict, u.Username)
	}
	if _, ok := s.users[u.ID]; !ok {
		s.userOrder = append(s.userOrder, u.ID)
	}
	s.users[u.ID] = u
	s.usernames[u.Username] = u.ID
	return u, nil
}

// --- Articles ---

// ListArticles returns all articles in insertion order.
func (s *Store) ListArticles(_ context.Context) ([]news.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]news.Article, 0, len(s.articleOrder))
	for _, id := range s.articleOrder {
		out = append(out, s.articles[id])
	}
	return out, nil
}

// ArticlesByTopic returns the articles filed under topicID.
func (s *Store) ArticlesByTopic(_ context.Context, topicID string) ([]news.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]news.Article, 0)
	for _, id := range s.articleOrder {
		if a := s.articles[id]; a.BelongsTo == topicID {
			out = append(out, a)
		}
	}
	return out, nil
}

// GetArticle returns an article by id.
func (s *Store) GetArticle(_ context.Context, id string) (news.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.articles[id]
	if !ok {
		return news.Article{}, errs.ErrNotFound
	}
	return a, nil
}

// CreateArticle persists a new article.
func (s *Store) CreateArticle(_ context.Context, a news.Article) (news.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.topics[a.BelongsTo]; !ok {
		return news.Article{}, fmt.Errorf("article topic: %w", errs.ErrNotFound)
	}
	if _, ok := s.articles[a.ID]; !ok {
		s.articleOrder = append(s.articleOrder, a.ID)
	}
	s.articles[a.ID] = a
	return a, nil
}

// AdjustArticleVotes adds delta to the article's votes under the write lock.
func (s *Store) AdjustArticleVotes(_ context.Context, id string, delta int) (news.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.articles[id]
	if !ok {
		return news.Article{}, errs.ErrNotFound
	}
	a.Votes += delta
	s.articles[id] = a
	return a, nil
}

// --- Comments ---

// CommentsByArticle returns the comments on articleID in insertion order.
func (s *Store) CommentsByArticle(_ context.Context, articleID string) ([]news.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]news.Comment, 0)
	for _, id := range s.commentOrder {
		if c := s.comments[id]; c.BelongsTo == articleID {
			out = append(out, c)
		}
	}
	return out, nil
}

// GetComment returns a comment by id.
func (s *Store) GetComment(_ context.Context, id string) (news.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.comments[id]
	if !ok {
		return news.Comment{}, errs.ErrNotFound
	}
	return c, nil
}

// CreateComment persists a new comment.
func (s *Store) CreateComment(_ context.Context, c news.Comment) (news.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.articles[c.BelongsTo]; !ok {
		return news.Comment{}, fmt.Errorf("comment article: %w", errs.ErrNotFound)
	}
	if _, ok := s.comments[c.ID]; !ok {
		s.commentOrder = append(s.commentOrder, c.ID)
	}
	s.comments[c.ID] = c
	return c, nil
}

// AdjustCommentVotes adds delta to the comment's votes under the write lock.
func (s *Store) AdjustCommentVotes(_ context.Context, id string, delta int) (news.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.comments[id]
	if !ok {
		return news.Comment{}, errs.ErrNotFound
	}
	c.Votes += delta
	s.comments[id] = c
	return c, nil
}

// DeleteComment removes a comment. Deleting a missing comment returns errs.ErrNotFound.
func (s *Store) DeleteComment(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comments[id]; !ok {
		return errs.ErrNotFound
	}
	delete(s.comments, id)
	for i, cid := range s.commentOrder {
		if cid == id {
			s.commentOrder = append(s.commentOrder[:i], s.commentOrder[i+1:]...)
			break
		}
	}
	return nil
}
