package httpapi

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"

	"github.com/tinoosan/ncnews/internal/news"
)

func (s *Server) listArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := s.articles.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeOK(w, r, toArticlesEnvelope(articles))
}

func (s *Server) getArticle(w http.ResponseWriter, r *http.Request) {
	a, err := s.articles.Get(r.Context(), chi.URLParam(r, paramArticleID))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeOK(w, r, articleEnvelope{Article: toArticleResponse(a)})
}

// voteArticle applies ?VOTE=UP|DOWN. Any other value returns the article unchanged.
func (s *Server) voteArticle(w http.ResponseWriter, r *http.Request) {
	v := news.ParseVote(r.URL.Query().Get("VOTE"))
	a, err := s.articles.Vote(r.Context(), chi.URLParam(r, paramArticleID), v)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	countVote(news.KindArticle, v)
	writeOK(w, r, articleEnvelope{Article: toArticleResponse(a)})
}

func (s *Server) listArticleComments(w http.ResponseWriter, r *http.Request) {
	comments, err := s.comments.ListByArticle(r.Context(), chi.URLParam(r, paramArticleID))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeOK(w, r, toCommentsEnvelope(comments))
}

func (s *Server) postArticleComment(w http.ResponseWriter, r *http.Request) {
	var req postCommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	in := news.Comment{Body: req.Body, CreatedBy: req.CreatedBy}
	saved, err := s.comments.Create(r.Context(), chi.URLParam(r, paramArticleID), in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	created(w, r, commentEnvelope{Comment: toCommentResponse(saved)})
}
