package postgres

// Package postgres provides a pgx-backed storage implementation that satisfies
// the repository and writer interfaces used by the services.
//
// Migrations that create the expected schema are embedded under migrations/ and
// applied with goose (see Migrate). Lists are ordered by the seq column, which
// records insertion order.

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sethvargo/go-retry"

	"github.com/tinoosan/ncnews/internal/errs"
	"github.com/tinoosan/ncnews/internal/news"
)

// Options tunes the connection pool.
type Options struct {
	MaxConns int32
	MinConns int32
	// ConnectRetries is how many times the initial ping is retried with exponential backoff.
	ConnectRetries uint64
}

// Store holds a pgx connection pool. All methods are safe for concurrent use.
type Store struct {
	pool *pgxpool.Pool
}

// Open establishes a pgx pool using the provided connection string and waits
// until the database answers a ping.
func Open(ctx context.Context, dsn string, opts Options) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	if opts.MaxConns > 0 {
		cfg.MaxConns = opts.MaxConns
	}
	if opts.MinConns > 0 {
		cfg.MinConns = opts.MinConns
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	backoff := retry.WithMaxRetries(opts.ConnectRetries, retry.NewExponential(200*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := pool.Ping(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Close releases the underlying pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Ready pings the pool to verify connectivity.
func (s *Store) Ready(ctx context.Context) error { return s.pool.Ping(ctx) }

// Reset truncates every table.
func (s *Store) Reset(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `truncate table comments, articles, users, topics restart identity cascade`)
	return err
}

// mapErr translates driver errors into errs sentinels.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return errs.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%w: %s", errs.ErrConflict, pgErr.ConstraintName)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s: %w", pgErr.ConstraintName, errs.ErrNotFound)
		}
	}
	return err
}

func nullable(id string) any {
	if id == "" {
		return nil
	}
	return id
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// --- Topics ---

func (s *Store) ListTopics(ctx context.Context) ([]news.Topic, error) {
	rows, err := s.pool.Query(ctx, `select id, title, slug, description from topics order by seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]news.Topic, 0)
	for rows.Next() {
		var t news.Topic
		if err := rows.Scan(&t.ID, &t.Title, &t.Slug, &t.Description); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) GetTopic(ctx context.Context, id string) (news.Topic, error) {
	var t news.Topic
	err := s.pool.QueryRow(ctx, `select id, title, slug, description from topics where id = $1`, id).
		Scan(&t.ID, &t.Title, &t.Slug, &t.Description)
	if err != nil {
		return news.Topic{}, mapErr(err)
	}
	return t, nil
}

func (s *Store) CreateTopic(ctx context.Context, t news.Topic) (news.Topic, error) {
	_, err := s.pool.Exec(ctx, `insert into topics (id, title, slug, description) values ($1,$2,$3,$4)`,
		t.ID, t.Title, t.Slug, t.Description)
	if err != nil {
		return news.Topic{}, mapErr(err)
	}
	return t, nil
}

// --- Users ---

func (s *Store) ListUsers(ctx context.Context) ([]news.User, error) {
	rows, err := s.pool.Query(ctx, `select id, username, name, avatar_url from users order by seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]news.User, 0)
	for rows.Next() {
		var u news.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Name, &u.AvatarURL); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *Store) GetUser(ctx context.Context, id string) (news.User, error) {
	return s.getUser(ctx, `select id, username, name, avatar_url from users where id = $1`, id)
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (news.User, error) {
	return s.getUser(ctx, `select id, username, name, avatar_url from users where username = $1`, username)
}

func (s *Store) getUser(ctx context.Context, query, arg string) (news.User, error) {
	var u news.User
	if err := s.pool.QueryRow(ctx, query, arg).Scan(&u.ID, &u.Username, &u.Name, &u.AvatarURL); err != nil {
		return news.User{}, mapErr(err)
	}
	return u, nil
}

func (s *Store) CreateUser(ctx context.Context, u news.User) (news.User, error) {
	_, err := s.pool.Exec(ctx, `insert into users (id, username, name, avatar_url) values ($1,$2,$3,$4)`,
		u.ID, u.Username, u.Name, u.AvatarURL)
	if err != nil {
		return news.User{}, mapErr(err)
	}
	return u, nil
}

// --- Articles ---

const articleCols = `id, title, body, belongs_to, votes, created_by, created_at`

func scanArticle(row pgx.Row) (news.Article, error) {
	var a news.Article
	var createdBy *string
	if err := row.Scan(&a.ID, &a.Title, &a.Body, &a.BelongsTo, &a.Votes, &createdBy, &a.CreatedAt); err != nil {
		return news.Article{}, err
	}
	a.CreatedBy = deref(createdBy)
	return a, nil
}

func (s *Store) queryArticles(ctx context.Context, query string, args ...any) ([]news.Article, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]news.Article, 0)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) ListArticles(ctx context.Context) ([]news.Article, error) {
	return s.queryArticles(ctx, `select `+articleCols+` from articles order by seq`)
}

func (s *Store) ArticlesByTopic(ctx context.Context, topicID string) ([]news.Article, error) {
	return s.queryArticles(ctx, `select `+articleCols+` from articles where belongs_to = $1 order by seq`, topicID)
}

func (s *Store) GetArticle(ctx context.Context, id string) (news.Article, error) {
	a, err := scanArticle(s.pool.QueryRow(ctx, `select `+articleCols+` from articles where id = $1`, id))
	if err != nil {
		return news.Article{}, mapErr(err)
	}
	return a, nil
}

func (s *Store) CreateArticle(ctx context.Context, a news.Article) (news.Article, error) {
	_, err := s.pool.Exec(ctx, `
        insert into articles (id, title, body, belongs_to, votes, created_by, created_at)
        values ($1,$2,$3,$4,$5,$6,$7)
    `, a.ID, a.Title, a.Body, a.BelongsTo, a.Votes, nullable(a.CreatedBy), a.CreatedAt)
	if err != nil {
		return news.Article{}, mapErr(err)
	}
	return a, nil
}

// AdjustArticleVotes increments votes in a single statement.
func (s *Store) AdjustArticleVotes(ctx context.Context, id string, delta int) (news.Article, error) {
	a, err := scanArticle(s.pool.QueryRow(ctx,
		`update articles set votes = votes + $1 where id = $2 returning `+articleCols, delta, id))
	if err != nil {
		return news.Article{}, mapErr(err)
	}
	return a, nil
}

// --- Comments ---

const commentCols = `id, body, belongs_to, votes, created_by, created_at`

func scanComment(row pgx.Row) (news.Comment, error) {
	var c news.Comment
	var createdBy *string
	if err := row.Scan(&c.ID, &c.Body, &c.BelongsTo, &c.Votes, &createdBy, &c.CreatedAt); err != nil {
		return news.Comment{}, err
	}
	c.CreatedBy = deref(createdBy)
	return c, nil
}

func (s *Store) CommentsByArticle(ctx context.Context, articleID string) ([]news.Comment, error) {
	rows, err := s.pool.Query(ctx, `select `+commentCols+` from comments where belongs_to = $1 order by seq`, articleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]news.Comment, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) GetComment(ctx context.Context, id string) (news.Comment, error) {
	c, err := scanComment(s.pool.QueryRow(ctx, `select `+commentCols+` from comments where id = $1`, id))
	if err != nil {
		return news.Comment{}, mapErr(err)
	}
	return c, nil
}

func (s *Store) CreateComment(ctx context.Context, c news.Comment) (news.Comment, error) {
	_, err := s.pool.Exec(ctx, `
        insert into comments (id, body, belongs_to, votes, created_by, created_at)
        values ($1,$2,$3,$4,$5,$6)
    `, c.ID, c.Body, c.BelongsTo, c.Votes, nullable(c.CreatedBy), c.CreatedAt)
	if err != nil {
		return news.Comment{}, mapErr(err)
	}
	return c, nil
}

func (s *Store) AdjustCommentVotes(ctx context.Context, id string, delta int) (news.Comment, error) {
	c, err := scanComment(s.pool.QueryRow(ctx,
		`update comments set votes = votes + $1 where id = $2 returning `+commentCols, delta, id))
	if err != nil {
		return news.Comment{}, mapErr(err)
	}
	return c, nil
}

func (s *Store) DeleteComment(ctx context.Context, id string) error {
	ct, err := s.pool.Exec(ctx, `delete from comments where id = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
