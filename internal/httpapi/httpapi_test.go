package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tinoosan/ncnews/internal/docid"
	"github.com/tinoosan/ncnews/internal/seed"
	"github.com/tinoosan/ncnews/internal/storage/memory"
)

var _ Store = (*memory.Store)(nil)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func setupWith(t *testing.T, opts Options) (http.Handler, seed.Docs) {
	t.Helper()
	store := memory.New()
	docs, err := seed.Load(context.Background(), store, seed.Default())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return New(store, testLogger(), opts).Handler(), docs
}

func setup(t *testing.T) (http.Handler, seed.Docs) {
	t.Helper()
	return setupWith(t, Options{})
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// keys decodes a JSON object and returns its top-level members.
func keys(t *testing.T, rec *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	var m map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return m
}

func expectMessage(t *testing.T, rec *httptest.ResponseRecorder, code int, msg string) {
	t.Helper()
	if rec.Code != code {
		t.Fatalf("expected %d, got %d: %s", code, rec.Code, rec.Body.String())
	}
	var m messageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m.Message != msg {
		t.Fatalf("expected message %q, got %q", msg, m.Message)
	}
}

const (
	msgBadRequest = "400: Bad Request."
	msgNotFound   = "404: Page Not Found."
)

func TestTopics_List(t *testing.T) {
	h, _ := setup(t)
	rec := do(h, http.MethodGet, "/api/topics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	m := keys(t, rec)
	if len(m) != 1 {
		t.Fatalf("expected only topics key, got %v", m)
	}
	var topics []topicResponse
	if err := json.Unmarshal(m["topics"], &topics); err != nil {
		t.Fatalf("decode topics: %v", err)
	}
	if len(topics) != 2 || topics[0].Slug != "mitch" {
		t.Fatalf("unexpected topics: %+v", topics)
	}
}

func TestUnmatchedRoutes(t *testing.T) {
	h, docs := setup(t)
	cases := []struct{ method, path string }{
		{http.MethodGet, "/api/topiccs"},
		{http.MethodGet, "/api/articless"},
		{http.MethodGet, "/nowhere"},
		{http.MethodDelete, "/api/topics"},
		{http.MethodPost, "/api/articles"},
		{http.MethodDelete, "/api/articles/" + docs.Articles[0].ID},
	}
	for _, c := range cases {
		t.Run(c.method+" "+c.path, func(t *testing.T) {
			expectMessage(t, do(h, c.method, c.path, ""), http.StatusNotFound, msgNotFound)
		})
	}
}

func TestMalformedIDs(t *testing.T) {
	h, _ := setup(t)
	const bad = "ejfjefbejhbfhjebfj"
	cases := []struct{ method, path, body string }{
		{http.MethodGet, "/api/topics/" + bad + "/articles", ""},
		{http.MethodPost, "/api/topics/" + bad + "/articles", `{"title":"t","body":"b"}`},
		{http.MethodGet, "/api/articles/" + bad, ""},
		{http.MethodPut, "/api/articles/" + bad + "?VOTE=UP", ""},
		{http.MethodGet, "/api/articles/" + bad + "/comments", ""},
		{http.MethodPost, "/api/articles/" + bad + "/comments", `{"body":"b"}`},
		{http.MethodPut, "/api/comments/" + bad + "?VOTE=UP", ""},
		{http.MethodDelete, "/api/comments/" + bad, ""},
		// 24 characters but not hex
		{http.MethodGet, "/api/articles/zzzzzzzzzzzzzzzzzzzzzzzz", ""},
	}
	for _, c := range cases {
		t.Run(c.method+" "+c.path, func(t *testing.T) {
			expectMessage(t, do(h, c.method, c.path, c.body), http.StatusBadRequest, msgBadRequest)
		})
	}
}

func TestWrongKindIDs(t *testing.T) {
	h, docs := setup(t)
	topicID, articleID, commentID := docs.Topics[0].ID, docs.Articles[0].ID, docs.Comments[0].ID
	cases := []struct{ method, path, body string }{
		{http.MethodGet, "/api/topics/" + articleID + "/articles", ""},
		{http.MethodPost, "/api/topics/" + articleID + "/articles", `{"title":"t","body":"b"}`},
		{http.MethodGet, "/api/articles/" + commentID + "/comments", ""},
		{http.MethodPost, "/api/articles/" + topicID + "/comments", `{"body":"b"}`},
		{http.MethodGet, "/api/articles/" + topicID, ""},
		{http.MethodPut, "/api/articles/" + topicID + "?VOTE=UP", ""},
		{http.MethodPut, "/api/comments/" + topicID + "?VOTE=UP", ""},
		{http.MethodDelete, "/api/comments/" + topicID, ""},
		{http.MethodGet, "/api/articles/" + docid.New(), ""},
		// a missing parent wins over a broken body
		{http.MethodPost, "/api/topics/" + articleID + "/articles", `{"title":`},
		{http.MethodPost, "/api/articles/" + topicID + "/comments", `{"body":`},
	}
	for _, c := range cases {
		t.Run(c.method+" "+c.path, func(t *testing.T) {
			expectMessage(t, do(h, c.method, c.path, c.body), http.StatusNotFound, msgNotFound)
		})
	}

	// and over a missing JSON content type
	for _, path := range []string{
		"/api/topics/" + articleID + "/articles",
		"/api/articles/" + topicID + "/comments",
	} {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{"title":"t","body":"b"}`))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		expectMessage(t, rec, http.StatusNotFound, msgNotFound)
	}
}

func TestUppercaseIDs(t *testing.T) {
	h, docs := setup(t)
	upper := strings.ToUpper

	rec := do(h, http.MethodGet, "/api/articles/"+upper(docs.Articles[2].ID)+"/comments", "")
	var comments commentsEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &comments)
	if rec.Code != http.StatusOK || len(comments.Comments) != 2 {
		t.Fatalf("comments by uppercase id: %d %s", rec.Code, rec.Body.String())
	}

	rec = do(h, http.MethodGet, "/api/topics/"+upper(docs.Topics[0].ID)+"/articles", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("articles by uppercase topic id: %d", rec.Code)
	}

	rec = do(h, http.MethodPost, "/api/topics/"+upper(docs.Topics[1].ID)+"/articles",
		`{"title":"t","body":"b","created_by":"`+upper(docs.Users[1].ID)+`"}`)
	var created articleEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &created)
	if rec.Code != http.StatusCreated || created.Article.BelongsTo != docs.Topics[1].ID || created.Article.CreatedBy != docs.Users[1].ID {
		t.Fatalf("post under uppercase ids: %d %+v", rec.Code, created.Article)
	}

	a := docs.Articles[0]
	if got := voteArticle(t, h, upper(a.ID), "?VOTE=UP"); got != a.Votes+1 {
		t.Fatalf("vote by uppercase id: %d", got)
	}
	if rec := do(h, http.MethodGet, "/api/articles/"+upper(a.ID), ""); rec.Code != http.StatusOK {
		t.Fatalf("get by uppercase id: %d", rec.Code)
	}

	path := "/api/comments/" + upper(docs.Comments[0].ID)
	if rec := do(h, http.MethodPut, path+"?VOTE=DOWN", ""); rec.Code != http.StatusOK {
		t.Fatalf("comment vote by uppercase id: %d", rec.Code)
	}
	expectMessage(t, do(h, http.MethodDelete, path, ""), http.StatusAccepted, "Delete successful")
	expectMessage(t, do(h, http.MethodDelete, "/api/comments/"+docs.Comments[0].ID, ""), http.StatusNotFound, msgNotFound)
}

func TestTopicArticles(t *testing.T) {
	h, docs := setup(t)
	rec := do(h, http.MethodGet, "/api/topics/"+docs.Topics[0].ID+"/articles", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var env articlesEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(env.Articles) != 3 || env.Articles[0].Title != "Living in the shadow of a great man" {
		t.Fatalf("unexpected articles: %+v", env.Articles)
	}
	for _, a := range env.Articles {
		if a.BelongsTo != docs.Topics[0].ID {
			t.Fatalf("article %s belongs to %s", a.ID, a.BelongsTo)
		}
	}
}

func TestPostTopicArticle(t *testing.T) {
	h, docs := setup(t)
	path := "/api/topics/" + docs.Topics[0].ID + "/articles"

	rec := do(h, http.MethodPost, path, `{"title":"this is my new article title","body":"This is my new article content"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if m := keys(t, rec); len(m) != 1 || m["article"] == nil {
		t.Fatalf("expected only article key, got %s", rec.Body.String())
	}
	var env articleEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	if env.Article.Title != "this is my new article title" || env.Article.Body != "This is my new article content" {
		t.Fatalf("unexpected article: %+v", env.Article)
	}
	if env.Article.Votes != 0 || env.Article.BelongsTo != docs.Topics[0].ID || !docid.Valid(env.Article.ID) {
		t.Fatalf("unexpected stored fields: %+v", env.Article)
	}

	// listed under the topic afterwards
	rec = do(h, http.MethodGet, path, "")
	var list articlesEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &list)
	if len(list.Articles) != 4 || list.Articles[3].ID != env.Article.ID {
		t.Fatalf("new article not listed last: %+v", list.Articles)
	}

	// with an author
	rec = do(h, http.MethodPost, path, `{"title":"t","body":"b","created_by":"`+docs.Users[0].ID+`"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 with author, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestPostTopicArticle_BadInput(t *testing.T) {
	h, docs := setup(t)
	path := "/api/topics/" + docs.Topics[0].ID + "/articles"

	for _, body := range []string{
		`{"title":"only a title"}`,
		`{"body":"only a body"}`,
		`{"title":`,
		`{"title":"t","body":"b","created_by":"` + docs.Topics[0].ID + `"}`,
		`{"title":"t","body":"b","created_by":"not-an-id"}`,
	} {
		expectMessage(t, do(h, http.MethodPost, path, body), http.StatusBadRequest, msgBadRequest)
	}

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader("title=t&body=b"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	expectMessage(t, rec, http.StatusUnsupportedMediaType, "415: Unsupported Media Type.")
}

func TestArticles_ListAndGet(t *testing.T) {
	h, docs := setup(t)
	rec := do(h, http.MethodGet, "/api/articles", "")
	var env articlesEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil || rec.Code != http.StatusOK {
		t.Fatalf("list: %d %v", rec.Code, err)
	}
	if len(env.Articles) != 4 {
		t.Fatalf("expected 4 articles, got %d", len(env.Articles))
	}

	rec = do(h, http.MethodGet, "/api/articles/"+docs.Articles[1].ID, "")
	var one articleEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &one)
	if rec.Code != http.StatusOK || one.Article.ID != docs.Articles[1].ID {
		t.Fatalf("get: %d %+v", rec.Code, one.Article)
	}
}

func TestRepeatedGetIsStable(t *testing.T) {
	h, docs := setup(t)
	for _, path := range []string{
		"/api/topics",
		"/api/articles",
		"/api/articles/" + docs.Articles[2].ID + "/comments",
		"/api/users/butter_bridge",
	} {
		first := do(h, http.MethodGet, path, "").Body.String()
		second := do(h, http.MethodGet, path, "").Body.String()
		if first != second {
			t.Fatalf("%s changed between reads:\n%s\n%s", path, first, second)
		}
	}
}

func TestArticleComments(t *testing.T) {
	h, docs := setup(t)
	rec := do(h, http.MethodGet, "/api/articles/"+docs.Articles[2].ID+"/comments", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if m := keys(t, rec); len(m) != 1 || m["comments"] == nil {
		t.Fatalf("expected only comments key, got %s", rec.Body.String())
	}
	var env commentsEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	if len(env.Comments) != 2 || env.Comments[0].BelongsTo != docs.Articles[2].ID {
		t.Fatalf("unexpected comments: %+v", env.Comments)
	}
}

func TestPostArticleComment(t *testing.T) {
	h, docs := setup(t)
	path := "/api/articles/" + docs.Articles[0].ID + "/comments"
	rec := do(h, http.MethodPost, path, `{"body":"This is my new comment"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var env commentEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	if env.Comment.Body != "This is my new comment" || env.Comment.Votes != 0 || env.Comment.BelongsTo != docs.Articles[0].ID {
		t.Fatalf("unexpected comment: %+v", env.Comment)
	}

	expectMessage(t, do(h, http.MethodPost, path, `{"body":"  "}`), http.StatusBadRequest, msgBadRequest)
}

func voteArticle(t *testing.T, h http.Handler, id, query string) int {
	t.Helper()
	rec := do(h, http.MethodPut, "/api/articles/"+id+query, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT %s: expected 200, got %d: %s", query, rec.Code, rec.Body.String())
	}
	var env articleEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return env.Article.Votes
}

func TestVoteArticle(t *testing.T) {
	h, docs := setup(t)
	a := docs.Articles[0]

	if got := voteArticle(t, h, a.ID, "?VOTE=UP"); got != a.Votes+1 {
		t.Fatalf("UP: expected %d, got %d", a.Votes+1, got)
	}
	if got := voteArticle(t, h, a.ID, "?VOTE=DOWN"); got != a.Votes {
		t.Fatalf("DOWN: expected %d, got %d", a.Votes, got)
	}
	for _, q := range []string{"?bananas", "?VOTE=up", "?VOTE=SIDEWAYS", ""} {
		if got := voteArticle(t, h, a.ID, q); got != a.Votes {
			t.Fatalf("%q: expected unchanged %d, got %d", q, a.Votes, got)
		}
	}
	// votes go below zero
	low := docs.Articles[1]
	for i := 0; i < low.Votes+2; i++ {
		voteArticle(t, h, low.ID, "?VOTE=DOWN")
	}
	if got := voteArticle(t, h, low.ID, ""); got != -2 {
		t.Fatalf("expected -2, got %d", got)
	}
}

func TestVoteComment(t *testing.T) {
	h, docs := setup(t)
	c := docs.Comments[0]
	vote := func(query string) int {
		rec := do(h, http.MethodPut, "/api/comments/"+c.ID+query, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("PUT %s: expected 200, got %d", query, rec.Code)
		}
		var env commentEnvelope
		_ = json.Unmarshal(rec.Body.Bytes(), &env)
		return env.Comment.Votes
	}
	if got := vote("?VOTE=UP"); got != c.Votes+1 {
		t.Fatalf("UP: got %d", got)
	}
	if got := vote("?VOTE=DOWN"); got != c.Votes {
		t.Fatalf("DOWN: got %d", got)
	}
	if got := vote("?bananas"); got != c.Votes {
		t.Fatalf("no-op: got %d", got)
	}
}

func TestDeleteComment(t *testing.T) {
	h, docs := setup(t)
	path := "/api/comments/" + docs.Comments[0].ID

	expectMessage(t, do(h, http.MethodDelete, path, ""), http.StatusAccepted, "Delete successful")
	expectMessage(t, do(h, http.MethodDelete, path, ""), http.StatusNotFound, msgNotFound)
	expectMessage(t, do(h, http.MethodPut, path+"?VOTE=UP", ""), http.StatusNotFound, msgNotFound)

	rec := do(h, http.MethodGet, "/api/articles/"+docs.Articles[0].ID+"/comments", "")
	var env commentsEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	if len(env.Comments) != 1 {
		t.Fatalf("expected 1 remaining comment, got %d", len(env.Comments))
	}
}

func TestUsers(t *testing.T) {
	h, _ := setup(t)
	rec := do(h, http.MethodGet, "/api/users/butter_bridge", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if m := keys(t, rec); len(m) != 1 || m["user"] == nil {
		t.Fatalf("expected only user key, got %s", rec.Body.String())
	}
	var env userEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	if env.User.Name != "jonny" {
		t.Fatalf("unexpected user: %+v", env.User)
	}

	expectMessage(t, do(h, http.MethodGet, "/api/users/ferferggvegrge", ""), http.StatusBadRequest, msgBadRequest)

	rec = do(h, http.MethodGet, "/api/users", "")
	var all usersEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &all)
	if len(all.Users) != 3 {
		t.Fatalf("expected 3 users, got %d", len(all.Users))
	}
}

func TestTrailingSlashAndRequestID(t *testing.T) {
	h, _ := setup(t)
	rec := do(h, http.MethodGet, "/api/topics/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with trailing slash, got %d", rec.Code)
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected generated request id")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/topics", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-Id"); got != "abc-123" {
		t.Fatalf("expected echoed request id, got %q", got)
	}
}

func TestRateLimit(t *testing.T) {
	h, _ := setupWith(t, Options{RateLimitRPS: 1, RateLimitBurst: 1})
	if rec := do(h, http.MethodGet, "/api/topics", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	expectMessage(t, do(h, http.MethodGet, "/api/topics", ""), http.StatusTooManyRequests, "429: Too Many Requests.")
	// health checks are not limited
	if rec := do(h, http.MethodGet, "/healthz", ""); rec.Code != http.StatusOK {
		t.Fatalf("healthz limited: %d", rec.Code)
	}
}

func TestBodyLimit(t *testing.T) {
	h, docs := setupWith(t, Options{MaxRequestBytes: 32})
	body := `{"title":"` + strings.Repeat("x", 64) + `","body":"b"}`
	rec := do(h, http.MethodPost, "/api/topics/"+docs.Topics[0].ID+"/articles", body)
	expectMessage(t, rec, http.StatusRequestEntityTooLarge, "413: Request Entity Too Large.")
}

type unreadyStore struct{ *memory.Store }

func (unreadyStore) Ready(context.Context) error { return errors.New("down") }

func TestHealthAndReady(t *testing.T) {
	h, _ := setup(t)
	for _, p := range []string{"/healthz", "/readyz", "/metrics"} {
		if rec := do(h, http.MethodGet, p, ""); rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", p, rec.Code)
		}
	}
	h = New(unreadyStore{memory.New()}, testLogger(), Options{}).Handler()
	if rec := do(h, http.MethodGet, "/readyz", ""); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestMetricsCountVotes(t *testing.T) {
	h, docs := setup(t)
	voteArticle(t, h, docs.Articles[0].ID, "?VOTE=UP")
	rec := do(h, http.MethodGet, "/metrics", "")
	if !strings.Contains(rec.Body.String(), `news_votes_total{direction="up",kind="article"}`) {
		t.Fatalf("vote counter missing from metrics output")
	}
	if !strings.Contains(rec.Body.String(), `route="/api/articles/{article_id}"`) {
		t.Fatalf("route label missing from metrics output")
	}
}
