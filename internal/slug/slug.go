// Package slug handles the short lowercase handles used for topic slugs and usernames.
package slug

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tinoosan/ncnews/internal/errs"
)

// MaxLen bounds a handle.
const MaxLen = 40

var reSlug = regexp.MustCompile(`^[a-z0-9_]{2,40}$`)

// IsSlug reports whether s matches ^[a-z0-9_]{2,40}$.
func IsSlug(s string) bool {
	return reSlug.MatchString(s)
}

// Check returns an error wrapping errs.ErrInvalid when s is not a handle.
// what names the field in the message.
func Check(what, s string) error {
	if !IsSlug(s) {
		return fmt.Errorf("%w: %s %q must match [a-z0-9_]{2,%d}", errs.ErrInvalid, what, s, MaxLen)
	}
	return nil
}

// Slugify derives a handle from a title: lowercase, runs of other characters
// become one '_', at most MaxLen long, no leading or trailing '_'.
func Slugify(title string) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(title) {
		keep := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !keep {
			pending = b.Len() > 0
			continue
		}
		if pending {
			if b.Len()+1 >= MaxLen {
				break
			}
			b.WriteByte('_')
			pending = false
		}
		b.WriteRune(r)
		if b.Len() >= MaxLen {
			break
		}
	}
	return b.String()
}
