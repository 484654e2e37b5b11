package repositories

import (
	"context"
)

// PriceCache caches computed price lookups. Invalidate drops every entry at once.
type PriceCache interface {
	// FetchJSON decodes the cached value for key into dest, populating it with
	// loader on a miss.
	FetchJSON(ctx context.Context, key string, dest any, loader func(context.Context) (any, error)) error

	// Invalidate makes every previously cached entry unreachable.
	Invalidate(ctx context.Context) error
}
