// Package relation resolves parent references between collections.
//
// A parent id is looked up in the collection of the expected kind only, so a
// well-formed id that belongs to another collection is reported exactly like
// a missing one.
package relation

import (
	"context"
	"fmt"

	"github.com/tinoosan/ncnews/internal/docid"
	"github.com/tinoosan/ncnews/internal/errs"
	"github.com/tinoosan/ncnews/internal/news"
)

// Lookup is the read side needed to resolve parents. Implementations return
// errs.ErrNotFound for unknown ids.
type Lookup interface {
	GetTopic(ctx context.Context, id string) (news.Topic, error)
	GetArticle(ctx context.Context, id string) (news.Article, error)
	GetUser(ctx context.Context, id string) (news.User, error)
}

// Parent identifies a resolved owning document.
type Parent struct {
	Kind news.Kind
	ID   string
}

// Resolver checks parent references before children are read or written.
type Resolver struct {
	lookup Lookup
}

func New(lookup Lookup) *Resolver { return &Resolver{lookup: lookup} }

// Resolve validates id and confirms it exists as a document of the given kind.
// The returned Parent carries the id in canonical lowercase form.
//
// Outcomes: errs.ErrMalformedID when id is not a document id, errs.ErrNotFound
// when no document of that kind has the id, otherwise the resolved Parent.
func (r *Resolver) Resolve(ctx context.Context, id string, kind news.Kind) (Parent, error) {
	id, err := docid.Parse(id)
	if err != nil {
		return Parent{}, err
	}
	switch kind {
	case news.KindTopic:
		_, err = r.lookup.GetTopic(ctx, id)
	case news.KindArticle:
		_, err = r.lookup.GetArticle(ctx, id)
	case news.KindUser:
		_, err = r.lookup.GetUser(ctx, id)
	default:
		return Parent{}, fmt.Errorf("%w: %s cannot own documents", errs.ErrInvalid, kind)
	}
	if err != nil {
		return Parent{}, fmt.Errorf("resolve %s %s: %w", kind, id, err)
	}
	return Parent{Kind: kind, ID: id}, nil
}
