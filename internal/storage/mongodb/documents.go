package mongodb

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tinoosan/ncnews/internal/errs"
	"github.com/tinoosan/ncnews/internal/news"
)

// BSON shapes of the stored documents. Ids are native ObjectIDs; the rest of
// the repo sees them as hex strings.

type topicDoc struct {
	ID          primitive.ObjectID `bson:"_id"`
	Title       string             `bson:"title"`
	Slug        string             `bson:"slug"`
	Description string             `bson:"description"`
}

type userDoc struct {
	ID        primitive.ObjectID `bson:"_id"`
	Username  string             `bson:"username"`
	Name      string             `bson:"name"`
	AvatarURL string             `bson:"avatar_url"`
}

type articleDoc struct {
	ID        primitive.ObjectID  `bson:"_id"`
	Title     string              `bson:"title"`
	Body      string              `bson:"body"`
	BelongsTo primitive.ObjectID  `bson:"belongs_to"`
	Votes     int                 `bson:"votes"`
	CreatedBy *primitive.ObjectID `bson:"created_by,omitempty"`
	CreatedAt time.Time           `bson:"created_at"`
}

type commentDoc struct {
	ID        primitive.ObjectID  `bson:"_id"`
	Body      string              `bson:"body"`
	BelongsTo primitive.ObjectID  `bson:"belongs_to"`
	Votes     int                 `bson:"votes"`
	CreatedBy *primitive.ObjectID `bson:"created_by,omitempty"`
	CreatedAt time.Time           `bson:"created_at"`
}

func oid(id string) (primitive.ObjectID, error) {
	o, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", errs.ErrMalformedID, id)
	}
	return o, nil
}

func optOID(id string) (*primitive.ObjectID, error) {
	if id == "" {
		return nil, nil
	}
	o, err := oid(id)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func optHex(o *primitive.ObjectID) string {
	if o == nil {
		return ""
	}
	return o.Hex()
}

func (d topicDoc) toDomain() news.Topic {
	return news.Topic{ID: d.ID.Hex(), Title: d.Title, Slug: d.Slug, Description: d.Description}
}

func (d userDoc) toDomain() news.User {
	return news.User{ID: d.ID.Hex(), Username: d.Username, Name: d.Name, AvatarURL: d.AvatarURL}
}

func (d articleDoc) toDomain() news.Article {
	return news.Article{
		ID:        d.ID.Hex(),
		Title:     d.Title,
		Body:      d.Body,
		BelongsTo: d.BelongsTo.Hex(),
		Votes:     d.Votes,
		CreatedBy: optHex(d.CreatedBy),
		CreatedAt: d.CreatedAt.UTC(),
	}
}

func (d commentDoc) toDomain() news.Comment {
	return news.Comment{
		ID:        d.ID.Hex(),
		Body:      d.Body,
		BelongsTo: d.BelongsTo.Hex(),
		Votes:     d.Votes,
		CreatedBy: optHex(d.CreatedBy),
		CreatedAt: d.CreatedAt.UTC(),
	}
}
