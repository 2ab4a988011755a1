package httpapi

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/tinoosan/ncnews/internal/news"
)

// route is one entry of the API table. Routes naming an IDParam get the
// document id check before the handler runs; routes naming a Parent also get
// the id resolved in that collection before the body is looked at.
type route struct {
	Method  string
	Pattern string
	IDParam string
	Parent  news.Kind
	Handler http.HandlerFunc
}

const (
	paramTopicID   = "topic_id"
	paramArticleID = "article_id"
	paramCommentID = "comment_id"
	paramUsername  = "username"
)

func (s *Server) apiRoutes() []route {
	return []route{
		{http.MethodGet, "/topics", "", "", s.listTopics},
		{http.MethodGet, "/topics/{topic_id}/articles", paramTopicID, news.KindTopic, s.listTopicArticles},
		{http.MethodPost, "/topics/{topic_id}/articles", paramTopicID, news.KindTopic, s.postTopicArticle},

		{http.MethodGet, "/articles", "", "", s.listArticles},
		{http.MethodGet, "/articles/{article_id}", paramArticleID, "", s.getArticle},
		{http.MethodPut, "/articles/{article_id}", paramArticleID, "", s.voteArticle},
		{http.MethodGet, "/articles/{article_id}/comments", paramArticleID, news.KindArticle, s.listArticleComments},
		{http.MethodPost, "/articles/{article_id}/comments", paramArticleID, news.KindArticle, s.postArticleComment},

		{http.MethodPut, "/comments/{comment_id}", paramCommentID, "", s.voteComment},
		{http.MethodDelete, "/comments/{comment_id}", paramCommentID, "", s.deleteComment},

		{http.MethodGet, "/users", "", "", s.listUsers},
		{http.MethodGet, "/users/{username}", "", "", s.getUser},
	}
}

// routes declares the public HTTP API endpoints and attaches any per-route middleware.
func (s *Server) routes() {
	r := s.rt
	r.Use(requestID)
	r.Use(chimw.StripSlashes)
	r.Use(requestLogger(s.log))
	r.Use(s.recoverer)
	r.Use(metricsMiddleware)
	r.NotFound(s.notFound)
	r.MethodNotAllowed(s.notFound)

	// Health (outside /api, not rate limited)
	r.Get("/healthz", s.healthz)
	r.Get("/readyz", s.readyz)
	r.Method(http.MethodGet, "/metrics", metricsHandler())

	r.Route("/api", func(r chi.Router) {
		r.Use(s.rateLimit)
		r.Use(s.limitBody)
		r.NotFound(s.notFound)
		r.MethodNotAllowed(s.notFound)
		for _, rt := range s.apiRoutes() {
			var mws []func(http.Handler) http.Handler
			if rt.IDParam != "" {
				mws = append(mws, s.validID(rt.IDParam))
			}
			// GET handlers resolve their parent in the service call itself.
			if rt.Parent != "" && rt.Method == http.MethodPost {
				mws = append(mws, s.requireParent(rt.IDParam, rt.Parent))
			}
			if rt.Method == http.MethodPost {
				mws = append(mws, s.requireJSON)
			}
			r.With(mws...).Method(rt.Method, rt.Pattern, rt.Handler)
		}
	})
}
