package httpapi

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/tinoosan/ncnews/internal/news"
)

func (s *Server) voteComment(w http.ResponseWriter, r *http.Request) {
	v := news.ParseVote(r.URL.Query().Get("VOTE"))
	c, err := s.comments.Vote(r.Context(), chi.URLParam(r, paramCommentID), v)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	countVote(news.KindComment, v)
	writeOK(w, r, commentEnvelope{Comment: toCommentResponse(c)})
}

func (s *Server) deleteComment(w http.ResponseWriter, r *http.Request) {
	if err := s.comments.Delete(r.Context(), chi.URLParam(r, paramCommentID)); err != nil {
		s.fail(w, r, err)
		return
	}
	render.Status(r, http.StatusAccepted)
	render.JSON(w, r, messageResponse{Message: "Delete successful"})
}
