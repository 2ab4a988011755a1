// Package docid validates and generates document identifiers.
//
// Identifiers share the shape of MongoDB ObjectIDs (12 bytes, hex encoded)
// regardless of which storage backend is in use.
package docid

import (
	"fmt"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tinoosan/ncnews/internal/errs"
)

// Len is the length of a hex encoded identifier.
const Len = 24

var reID = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// Valid returns true if id matches ^[0-9a-fA-F]{24}$
func Valid(id string) bool {
	return reID.MatchString(id)
}

// Check returns an error wrapping errs.ErrMalformedID when id is not valid.
func Check(id string) error {
	if !Valid(id) {
		return fmt.Errorf("%w: %q", errs.ErrMalformedID, id)
	}
	return nil
}

// Parse checks id and returns its canonical lowercase form, the form every
// store keeps.
func Parse(id string) (string, error) {
	if err := Check(id); err != nil {
		return "", err
	}
	return strings.ToLower(id), nil
}

// New returns a fresh identifier.
func New() string {
	return primitive.NewObjectID().Hex()
}
