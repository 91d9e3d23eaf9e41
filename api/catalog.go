package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	page, err := getList[Category](ctx, c, "categories/", nil, "")
	return page.Results, err
}

// Stats returns marketplace-wide counts and the distinct makes on sale.
func (c *Client) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	err := c.call(ctx, http.MethodGet, "stats/", nil, "", nil, &s)
	return s, err
}

// SearchSuggestions returns autocomplete hints for q. The backend ignores
// queries shorter than two characters, so those never leave the site.
func (c *Client) SearchSuggestions(ctx context.Context, q string) ([]Suggestion, error) {
	q = strings.TrimSpace(q)
	if len([]rune(q)) < 2 {
		return []Suggestion{}, nil
	}
	var out []Suggestion
	err := c.call(ctx, http.MethodGet, "search-suggestions/", url.Values{"q": {q}}, "", nil, &out)
	return out, err
}
