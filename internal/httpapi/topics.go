package httpapi

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"

	"github.com/tinoosan/ncnews/internal/news"
)

func (s *Server) listTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := s.topics.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out := make([]topicResponse, 0, len(topics))
	for _, t := range topics {
		out = append(out, toTopicResponse(t))
	}
	writeOK(w, r, topicsEnvelope{Topics: out})
}

func (s *Server) listTopicArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := s.articles.ListByTopic(r.Context(), chi.URLParam(r, paramTopicID))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeOK(w, r, toArticlesEnvelope(articles))
}

func (s *Server) postTopicArticle(w http.ResponseWriter, r *http.Request) {
	var req postArticleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	in := news.Article{Title: req.Title, Body: req.Body, CreatedBy: req.CreatedBy}
	saved, err := s.articles.Create(r.Context(), chi.URLParam(r, paramTopicID), in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	created(w, r, articleEnvelope{Article: toArticleResponse(saved)})
}
