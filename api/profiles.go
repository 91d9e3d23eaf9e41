package api

import (
	"context"
	"net/http"
)

func (c *Client) CreateDealerProfile(ctx context.Context, token string, p DealerProfile) (DealerProfile, error) {
	var out DealerProfile
	err := c.call(ctx, http.MethodPost, "dealers/create/", nil, token, p, &out)
	return out, err
}

func (c *Client) CreateBuyerProfile(ctx context.Context, token string, p BuyerProfile) (BuyerProfile, error) {
	var out BuyerProfile
	err := c.call(ctx, http.MethodPost, "buyers/create/", nil, token, p, &out)
	return out, err
}

func (c *Client) DealerProfile(ctx context.Context, token string) (DealerProfile, error) {
	var out DealerProfile
	err := c.call(ctx, http.MethodGet, "dealers/profile/", nil, token, nil, &out)
	return out, err
}

func (c *Client) UpdateDealerProfile(ctx context.Context, token string, p DealerProfile) (DealerProfile, error) {
	var out DealerProfile
	err := c.call(ctx, http.MethodPut, "dealers/profile/", nil, token, p, &out)
	return out, err
}

func (c *Client) BuyerProfile(ctx context.Context, token string) (BuyerProfile, error) {
	var out BuyerProfile
	err := c.call(ctx, http.MethodGet, "buyers/profile/", nil, token, nil, &out)
	return out, err
}

func (c *Client) UpdateBuyerProfile(ctx context.Context, token string, p BuyerProfile) (BuyerProfile, error) {
	var out BuyerProfile
	err := c.call(ctx, http.MethodPut, "buyers/profile/", nil, token, p, &out)
	return out, err
}
