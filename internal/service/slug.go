package service

import (
	"context"

	"github.com/yunwei-labs/mechsite/internal/domain"
	"github.com/yunwei-labs/mechsite/pkg/slug"
)

// slugChecker reports whether a candidate slug is already taken by a row
// other than excludeID.
type slugChecker func(ctx context.Context, candidate, excludeID string) (bool, error)

// uniqueSlug derives a slug from title and probes numbered suffixes until a
// free one is found. The UNIQUE index on the slug column is the backstop for
// concurrent writers; the retry limit keeps a pathological title from
// looping forever.
func uniqueSlug(ctx context.Context, title, excludeID string, retryLimit int, taken slugChecker) (string, error) {
	base := slug.Make(title)

	candidate := base
	for i := 2; ; i++ {
		exists, err := taken(ctx, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		if i > retryLimit {
			return "", domain.ErrDuplicateSlug
		}
		candidate = slug.WithSuffix(base, i)
	}
}
