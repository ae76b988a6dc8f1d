package pagination

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	uuid "github.com/satori/go.uuid"
)

// MaxResults is the default page size for every list endpoint.
const MaxResults = 10

const pkg = "pagination/"

// TokenStore persists cursors under opaque tokens. Consecutive page
// requests may be served by different process instances, so the store
// has to be shared (redis in production).
type TokenStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}) error
}

// Cursor is the position a token resolves to. PreviousToken chains back
// one page so "previous" traversal never needs server-side sessions.
type Cursor struct {
	Limit         int    `json:"limit"`
	StartIndex    int    `json:"startIndex"`
	PreviousToken string `json:"previous,omitempty"`
}

// Codec mints and resolves pagination tokens.
type Codec struct {
	log   *slog.Logger
	store TokenStore
}

func New(log *slog.Logger, store TokenStore) *Codec {
	return &Codec{log: log, store: store}
}

// Resolve maps the next/previous query parameters onto the cursor for
// the page to fetch. The second return value is the token identifying
// that page ("" for the first page); it becomes the response's
// "previous" value and the stored back-link of the next token.
func (c *Codec) Resolve(ctx context.Context, next string, previous string, limit int) (Cursor, string, error) {
	if limit < 1 {
		limit = MaxResults
	}

	start := Cursor{Limit: limit}

	switch {
	case next != "":
		cur, ok, err := c.lookup(ctx, next)
		if err != nil {
			return Cursor{}, "", err
		}
		if !ok {
			return start, "", nil
		}
		return cur, next, nil

	case previous != "":
		cur, ok, err := c.lookup(ctx, previous)
		if err != nil {
			return Cursor{}, "", err
		}
		if !ok || cur.PreviousToken == "" {
			// already at the start of the list, keep the limit
			start.Limit = limit
			return start, "", nil
		}

		back, ok, err := c.lookup(ctx, cur.PreviousToken)
		if err != nil {
			return Cursor{}, "", err
		}
		if !ok {
			return start, "", nil
		}
		return back, cur.PreviousToken, nil

	default:
		return start, "", nil
	}
}

// Mint stores a cursor pointing at startIndex and returns its token.
// currentToken is the token of the page being returned, preserved as the
// back-link for "previous" traversal.
func (c *Codec) Mint(ctx context.Context, currentToken string, limit int, startIndex int) (string, error) {
	op := pkg + "Mint"

	token := uuid.NewV4().String()

	cur := Cursor{
		Limit:         limit,
		StartIndex:    startIndex,
		PreviousToken: currentToken,
	}

	raw, err := json.Marshal(cur)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := c.store.Set(ctx, cacheKey(token), string(raw)); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return token, nil
}

func (c *Codec) lookup(ctx context.Context, token string) (Cursor, bool, error) {
	op := pkg + "lookup"

	raw, err := c.store.Get(ctx, cacheKey(token))
	if err != nil {
		return Cursor{}, false, fmt.Errorf("%s: %w", op, err)
	}

	if raw == "" {
		c.log.Warn("unknown pagination token, restarting from first page",
			slog.String("op", op), slog.String("token", token))
		return Cursor{}, false, nil
	}

	var cur Cursor
	if err := json.Unmarshal([]byte(raw), &cur); err != nil {
		return Cursor{}, false, fmt.Errorf("%s: %w", op, err)
	}

	if cur.Limit < 1 {
		cur.Limit = MaxResults
	}

	return cur, true, nil
}

func cacheKey(token string) string {
	return "cursor:" + token
}

// Page is one page of a listing plus its traversal tokens.
type Page[T any] struct {
	Items    []T
	Next     string
	Previous string
}

// Build trims an over-fetched result slice (callers query limit+1 rows
// to detect whether more remain) and mints the next token when needed.
// Next is empty when the result set ends exactly at the page boundary.
func Build[T any](ctx context.Context, c *Codec, items []T, cur Cursor, currentToken string) (Page[T], error) {
	page := Page[T]{Items: items, Previous: currentToken}

	if len(items) > cur.Limit {
		page.Items = items[:cur.Limit]

		next, err := c.Mint(ctx, currentToken, cur.Limit, cur.StartIndex+cur.Limit)
		if err != nil {
			return Page[T]{}, err
		}
		page.Next = next
	}

	return page, nil
}
