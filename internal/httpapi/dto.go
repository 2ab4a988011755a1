package httpapi

import (
	"time"

	"github.com/tinoosan/ncnews/internal/news"
)

// Requests

type postArticleRequest struct {
	Title     string `json:"title"`
	Body      string `json:"body"`
	CreatedBy string `json:"created_by"`
}

type postCommentRequest struct {
	Body      string `json:"body"`
	CreatedBy string `json:"created_by"`
}

// Responses

type topicResponse struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type articleResponse struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	BelongsTo string    `json:"belongs_to"`
	Votes     int       `json:"votes"`
	CreatedBy string    `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type commentResponse struct {
	ID        string    `json:"_id"`
	Body      string    `json:"body"`
	BelongsTo string    `json:"belongs_to"`
	Votes     int       `json:"votes"`
	CreatedBy string    `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type userResponse struct {
	ID        string `json:"_id"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

type topicsEnvelope struct {
	Topics []topicResponse `json:"topics"`
}

type articlesEnvelope struct {
	Articles []articleResponse `json:"articles"`
}

type articleEnvelope struct {
	Article articleResponse `json:"article"`
}

type commentsEnvelope struct {
	Comments []commentResponse `json:"comments"`
}

type commentEnvelope struct {
	Comment commentResponse `json:"comment"`
}

type usersEnvelope struct {
	Users []userResponse `json:"users"`
}

type userEnvelope struct {
	User userResponse `json:"user"`
}

func toTopicResponse(t news.Topic) topicResponse {
	return topicResponse{ID: t.ID, Title: t.Title, Slug: t.Slug, Description: t.Description}
}

func toArticleResponse(a news.Article) articleResponse {
	return articleResponse{
		ID:        a.ID,
		Title:     a.Title,
		Body:      a.Body,
		BelongsTo: a.BelongsTo,
		Votes:     a.Votes,
		CreatedBy: a.CreatedBy,
		CreatedAt: a.CreatedAt,
	}
}

func toCommentResponse(c news.Comment) commentResponse {
	return commentResponse{
		ID:        c.ID,
		Body:      c.Body,
		BelongsTo: c.BelongsTo,
		Votes:     c.Votes,
		CreatedBy: c.CreatedBy,
		CreatedAt: c.CreatedAt,
	}
}

func toUserResponse(u news.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username, Name: u.Name, AvatarURL: u.AvatarURL}
}

func toArticlesEnvelope(in []news.Article) articlesEnvelope {
	out := make([]articleResponse, 0, len(in))
	for _, a := range in {
		out = append(out, toArticleResponse(a))
	}
	return articlesEnvelope{Articles: out}
}

func toCommentsEnvelope(in []news.Comment) commentsEnvelope {
	out := make([]commentResponse, 0, len(in))
	for _, c := range in {
		out = append(out, toCommentResponse(c))
	}
	return commentsEnvelope{Comments: out}
}
