// Package mongodb stores documents in MongoDB, one collection per kind.
//
// Lists are sorted by _id, which follows insertion order for ids minted by
// docid.New. Vote adjustments use $inc through FindOneAndUpdate so concurrent
// votes never lose updates.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/tinoosan/ncnews/internal/errs"
	"github.com/tinoosan/ncnews/internal/news"
)

const (
	colTopics   = "topics"
	colUsers    = "users"
	colArticles = "articles"
	colComments = "comments"
)

// Store wraps a connected client and the database holding the collections.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Open connects to uri, waits for the primary to answer and returns a store on database.
func Open(ctx context.Context, uri, database string, connectRetries uint64) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	backoff := retry.WithMaxRetries(connectRetries, retry.NewExponential(200*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return &Store{client: client, db: client.Database(database)}, nil
}

// Close disconnects the client.
func (s *Store) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.client.Disconnect(ctx)
}

// Ready pings the primary.
func (s *Store) Ready(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// EnsureIndexes creates the unique and parent-reference indexes.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)
	byParent := bson.D{{Key: "belongs_to", Value: 1}, {Key: "_id", Value: 1}}
	specs := map[string][]mongo.IndexModel{
		colTopics:   {{Keys: bson.D{{Key: "slug", Value: 1}}, Options: unique}},
		colUsers:    {{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique}},
		colArticles: {{Keys: byParent}},
		colComments: {{Keys: byParent}},
	}
	for col, models := range specs {
		if _, err := s.db.Collection(col).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create %s indexes: %w", col, err)
		}
	}
	return nil
}

// Reset drops the database and recreates its indexes.
func (s *Store) Reset(ctx context.Context) error {
	if err := s.db.Drop(ctx); err != nil {
		return err
	}
	return s.EnsureIndexes(ctx)
}

func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return errs.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", errs.ErrConflict, err)
	}
	return err
}

var byInsertion = options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

func findAll[D any, T any](ctx context.Context, col *mongo.Collection, filter any, conv func(D) T) ([]T, error) {
	cur, err := col.Find(ctx, filter, byInsertion)
	if err != nil {
		return nil, err
	}
	var docs []D
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]T, 0, len(docs))
	for _, d := range docs {
		out = append(out, conv(d))
	}
	return out, nil
}

func findOne[D any](ctx context.Context, col *mongo.Collection, filter any) (D, error) {
	var d D
	err := col.FindOne(ctx, filter).Decode(&d)
	return d, mapErr(err)
}

// exists reports whether a document with id is present in col.
func (s *Store) exists(ctx context.Context, col string, id primitive.ObjectID) error {
	n, err := s.db.Collection(col).CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return err
	}
	if n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// --- Topics ---

func (s *Store) ListTopics(ctx context.Context) ([]news.Topic, error) {
	return findAll(ctx, s.db.Collection(colTopics), bson.M{}, topicDoc.toDomain)
}

func (s *Store) GetTopic(ctx context.Context, id string) (news.Topic, error) {
	o, err := oid(id)
	if err != nil {
		return news.Topic{}, err
	}
	d, err := findOne[topicDoc](ctx, s.db.Collection(colTopics), bson.M{"_id": o})
	if err != nil {
		return news.Topic{}, err
	}
	return d.toDomain(), nil
}

func (s *Store) CreateTopic(ctx context.Context, t news.Topic) (news.Topic, error) {
	o, err := oid(t.ID)
	if err != nil {
		return news.Topic{}, err
	}
	d := topicDoc{ID: o, Title: t.Title, Slug: t.Slug, Description: t.Description}
	if _, err := s.db.Collection(colTopics).InsertOne(ctx, d); err != nil {
		return news.Topic{}, mapErr(err)
	}
	return d.toDomain(), nil
}

// --- Users ---

func (s *Store) ListUsers(ctx context.Context) ([]news.User, error) {
	return findAll(ctx, s.db.Collection(colUsers), bson.M{}, userDoc.toDomain)
}

func (s *Store) GetUser(ctx context.Context, id string) (news.User, error) {
	o, err := oid(id)
	if err != nil {
		return news.User{}, err
	}
	d, err := findOne[userDoc](ctx, s.db.Collection(colUsers), bson.M{"_id": o})
	if err != nil {
		return news.User{}, err
	}
	return d.toDomain(), nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (news.User, error) {
	d, err := findOne[userDoc](ctx, s.db.Collection(colUsers), bson.M{"username": username})
	if err != nil {
		return news.User{}, err
	}
	return d.toDomain(), nil
}

func (s *Store) CreateUser(ctx context.Context, u news.User) (news.User, error) {
	o, err := oid(u.ID)
	if err != nil {
		return news.User{}, err
	}
	d := userDoc{ID: o, Username: u.Username, Name: u.Name, AvatarURL: u.AvatarURL}
	if _, err := s.db.Collection(colUsers).InsertOne(ctx, d); err != nil {
		return news.User{}, mapErr(err)
	}
	return d.toDomain(), nil
}

// --- Articles ---

func (s *Store) ListArticles(ctx context.Context) ([]news.Article, error) {
	return findAll(ctx, s.db.Collection(colArticles), bson.M{}, articleDoc.toDomain)
}

func (s *Store) ArticlesByTopic(ctx context.Context, topicID string) ([]news.Article, error) {
	o, err := oid(topicID)
	if err != nil {
		return nil, err
	}
	return findAll(ctx, s.db.Collection(colArticles), bson.M{"belongs_to": o}, articleDoc.toDomain)
}

func (s *Store) GetArticle(ctx context.Context, id string) (news.Article, error) {
	o, err := oid(id)
	if err != nil {
		return news.Article{}, err
	}
	d, err := findOne[articleDoc](ctx, s.db.Collection(colArticles), bson.M{"_id": o})
	if err != nil {
		return news.Article{}, err
	}
	return d.toDomain(), nil
}

// CreateArticle checks the owning topic before inserting; MongoDB has no foreign keys.
func (s *Store) CreateArticle(ctx context.Context, a news.Article) (news.Article, error) {
	o, err := oid(a.ID)
	if err != nil {
		return news.Article{}, err
	}
	parent, err := oid(a.BelongsTo)
	if err != nil {
		return news.Article{}, err
	}
	author, err := optOID(a.CreatedBy)
	if err != nil {
		return news.Article{}, err
	}
	if err := s.exists(ctx, colTopics, parent); err != nil {
		return news.Article{}, fmt.Errorf("article topic: %w", err)
	}
	d := articleDoc{ID: o, Title: a.Title, Body: a.Body, BelongsTo: parent, Votes: a.Votes, CreatedBy: author, CreatedAt: a.CreatedAt}
	if _, err := s.db.Collection(colArticles).InsertOne(ctx, d); err != nil {
		return news.Article{}, mapErr(err)
	}
	return d.toDomain(), nil
}

func (s *Store) AdjustArticleVotes(ctx context.Context, id string, delta int) (news.Article, error) {
	o, err := oid(id)
	if err != nil {
		return news.Article{}, err
	}
	var d articleDoc
	err = s.db.Collection(colArticles).FindOneAndUpdate(ctx,
		bson.M{"_id": o},
		bson.M{"$inc": bson.M{"votes": delta}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&d)
	if err != nil {
		return news.Article{}, mapErr(err)
	}
	return d.toDomain(), nil
}

// --- Comments ---

func (s *Store) CommentsByArticle(ctx context.Context, articleID string) ([]news.Comment, error) {
	o, err := oid(articleID)
	if err != nil {
		return nil, err
	}
	return findAll(ctx, s.db.Collection(colComments), bson.M{"belongs_to": o}, commentDoc.toDomain)
}

func (s *Store) GetComment(ctx context.Context, id string) (news.Comment, error) {
	o, err := oid(id)
	if err != nil {
		return news.Comment{}, err
	}
	d, err := findOne[commentDoc](ctx, s.db.Collection(colComments), bson.M{"_id": o})
	if err != nil {
		return news.Comment{}, err
	}
	return d.toDomain(), nil
}

func (s *Store) CreateComment(ctx context.Context, c news.Comment) (news.Comment, error) {
	o, err := oid(c.ID)
	if err != nil {
		return news.Comment{}, err
	}
	parent, err := oid(c.BelongsTo)
	if err != nil {
		return news.Comment{}, err
	}
	author, err := optOID(c.CreatedBy)
	if err != nil {
		return news.Comment{}, err
	}
	if err := s.exists(ctx, colArticles, parent); err != nil {
		return news.Comment{}, fmt.Errorf("comment article: %w", err)
	}
	d := commentDoc{ID: o, Body: c.Body, BelongsTo: parent, Votes: c.Votes, CreatedBy: author, CreatedAt: c.CreatedAt}
	if _, err := s.db.Collection(colComments).InsertOne(ctx, d); err != nil {
		return news.Comment{}, mapErr(err)
	}
	return d.toDomain(), nil
}

func (s *Store) AdjustCommentVotes(ctx context.Context, id string, delta int) (news.Comment, error) {
	o, err := oid(id)
	if err != nil {
		return news.Comment{}, err
	}
	var d commentDoc
	err = s.db.Collection(colComments).FindOneAndUpdate(ctx,
		bson.M{"_id": o},
		bson.M{"$inc": bson.M{"votes": delta}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&d)
	if err != nil {
		return news.Comment{}, mapErr(err)
	}
	return d.toDomain(), nil
}

func (s *Store) DeleteComment(ctx context.Context, id string) error {
	o, err := oid(id)
	if err != nil {
		return err
	}
	res, err := s.db.Collection(colComments).DeleteOne(ctx, bson.M{"_id": o})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}
