package api

import (
	"context"
	"fmt"
	"net/http"
)

func (c *Client) Favorites(ctx context.Context, token string) ([]Favorite, error) {
	page, err := getList[Favorite](ctx, c, "favorites/", nil, token)
	return page.Results, err
}

func (c *Client) AddFavorite(ctx context.Context, token string, carID int) (Favorite, error) {
	var f Favorite
	body := map[string]int{"car": carID}
	err := c.call(ctx, http.MethodPost, "favorites/", nil, token, body, &f)
	return f, err
}

func (c *Client) RemoveFavorite(ctx context.Context, token string, favoriteID int) error {
	return c.call(ctx, http.MethodDelete, fmt.Sprintf("favorites/%d/", favoriteID), nil, token, nil, nil)
}

// ToggleFavorite flips the favorite state of a car and reports the new state.
func (c *Client) ToggleFavorite(ctx context.Context, token string, carID int) (bool, error) {
	var resp struct {
		Favorited   *bool `json:"favorited"`
		IsFavorited *bool `json:"isFavorited"`
	}
	if err := c.call(ctx, http.MethodPost, fmt.Sprintf("cars/%d/toggle-favorite/", carID), nil, token, nil, &resp); err != nil {
		return false, err
	}
	switch {
	case resp.Favorited != nil:
		return *resp.Favorited, nil
	case resp.IsFavorited != nil:
		return *resp.IsFavorited, nil
	}
	return false, fmt.Errorf("%w: toggle-favorite response has no state", ErrInvalidResponse)
}

// FindFavorite returns the favorite holding carID, if any.
func FindFavorite(favs []Favorite, carID int) (Favorite, bool) {
	for _, f := range favs {
		if f.Car.ID == carID {
			return f, true
		}
	}
	return Favorite{}, false
}
