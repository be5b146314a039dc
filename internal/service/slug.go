package service

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrEmptySlugSeed means the seed normalized down to nothing, so no slug can
// be derived from it.
var ErrEmptySlugSeed = errors.New("slug seed is empty after normalization")

// diacriticFolder strips combining marks, so "Café" slugifies to "cafe".
var diacriticFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify normalizes a seed string into a URL-safe lowercase slug: diacritics
// folded, punctuation stripped, whitespace and separator runs collapsed to
// single hyphens.
func Slugify(seed string) string {
	folded, _, err := transform.String(diacriticFolder, seed)
	if err != nil {
		folded = seed
	}

	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	return strings.TrimRight(b.String(), "-")
}

// AllocateSlug derives a unique slug from the seed using the given existence
// predicate. The base slug wins when free; otherwise -1, -2, ... suffixes are
// tried in order until one is unused. Checks are strictly sequential, so
// within one batch every allocation observes all earlier commits.
func AllocateSlug(seed string, exists func(string) (bool, error)) (string, error) {
	base := Slugify(seed)
	if base == "" {
		return "", ErrEmptySlugSeed
	}

	candidate := base
	for suffix := 1; ; suffix++ {
		taken, err := exists(candidate)
		if err != nil {
			return "", fmt.Errorf("check slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, suffix)
	}
}
