package news

import "time"

// Kind names a document collection.
type Kind string

const (
	KindTopic   Kind = "topic"
	KindArticle Kind = "article"
	KindComment Kind = "comment"
	KindUser    Kind = "user"
)

// Topic groups articles under a shared subject.
type Topic struct {
	ID          string
	Title       string
	Slug        string
	Description string
}

// User is an author of articles and comments. Username is unique.
type User struct {
	ID        string
	Username  string
	Name      string
	AvatarURL string
}

// Article is a post filed under a topic.
type Article struct {
	ID    string
	Title string
	Body  string
	// BelongsTo is the owning topic id.
	BelongsTo string
	Votes     int
	// CreatedBy is the authoring user id; empty when unknown.
	CreatedBy string
	CreatedAt time.Time
}

// Comment is a reply to an article.
type Comment struct {
	ID   string
	Body string
	// BelongsTo is the owning article id.
	BelongsTo string
	Votes     int
	CreatedBy string
	CreatedAt time.Time
}
