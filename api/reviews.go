package api

import (
	"context"
	"fmt"
	"net/http"
)

func (c *Client) CarReviews(ctx context.Context, token string, carID int) ([]Review, error) {
	page, err := getList[Review](ctx, c, fmt.Sprintf("cars/%d/reviews/", carID), nil, token)
	return page.Results, err
}

func (c *Client) CreateReview(ctx context.Context, token string, carID int, in ReviewInput) (Review, error) {
	var r Review
	err := c.call(ctx, http.MethodPost, fmt.Sprintf("cars/%d/reviews/create/", carID), nil, token, in, &r)
	return r, err
}

func (c *Client) UpdateReview(ctx context.Context, token string, reviewID int, in ReviewInput) (Review, error) {
	var r Review
	err := c.call(ctx, http.MethodPut, fmt.Sprintf("reviews/%d/", reviewID), nil, token, in, &r)
	return r, err
}

func (c *Client) DeleteReview(ctx context.Context, token string, reviewID int) error {
	return c.call(ctx, http.MethodDelete, fmt.Sprintf("reviews/%d/", reviewID), nil, token, nil, nil)
}
