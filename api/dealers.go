package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

func searchQuery(search string) url.Values {
	search = strings.TrimSpace(search)
	if search == "" {
		return nil
	}
	return url.Values{"search": {search}}
}

// Dealers lists dealer accounts, optionally filtered by name or address.
func (c *Client) Dealers(ctx context.Context, search string) ([]Dealer, error) {
	page, err := getList[Dealer](ctx, c, "dealers/", searchQuery(search), "")
	return page.Results, err
}

// Dealerships lists public dealership profiles.
func (c *Client) Dealerships(ctx context.Context, search string) ([]Dealership, error) {
	page, err := getList[Dealership](ctx, c, "dealerships/", searchQuery(search), "")
	return page.Results, err
}

// MyDealership returns the authenticated dealer's dealership. A dealer
// without one gets an error matching ErrNotFound.
func (c *Client) MyDealership(ctx context.Context, token string) (Dealership, error) {
	var d Dealership
	err := c.call(ctx, http.MethodGet, "dealerships/me/", nil, token, nil, &d)
	return d, err
}

func (c *Client) CreateDealership(ctx context.Context, token string, in DealershipInput, avatar *File) (Dealership, error) {
	return c.saveDealership(ctx, http.MethodPost, "dealerships/create/", token, in, avatar)
}

func (c *Client) UpdateDealership(ctx context.Context, token string, in DealershipInput, avatar *File) (Dealership, error) {
	return c.saveDealership(ctx, http.MethodPut, "dealerships/me/", token, in, avatar)
}

func (c *Client) saveDealership(ctx context.Context, method, path, token string, in DealershipInput, avatar *File) (Dealership, error) {
	var d Dealership
	if avatar == nil {
		err := c.call(ctx, method, path, nil, token, in, &d)
		return d, err
	}
	fields := [][2]string{
		{"name", in.Name},
		{"description", in.Description},
		{"website", in.Website},
	}
	for _, s := range in.Specialties {
		fields = append(fields, [2]string{"specialties", s})
	}
	for _, l := range in.Locations {
		fields = append(fields, [2]string{"locations", l})
	}
	err := c.callMultipart(ctx, method, path, token, fields, "avatar", []File{*avatar}, &d)
	return d, err
}
