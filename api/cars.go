package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Cars lists published cars. query carries the backend filter parameters
// (make, model, year, min_price, max_price, location, fuel_type,
// transmission, category, search, ordering, page).
func (c *Client) Cars(ctx context.Context, query url.Values) (CarPage, error) {
	page, err := getList[Car](ctx, c, "cars/", query, "")
	if err != nil {
		return CarPage{}, err
	}
	return CarPage{
		Cars:     page.Results,
		Count:    page.Count,
		Next:     deref(page.Next),
		Previous: deref(page.Previous),
	}, nil
}

// Car returns a single car with images and reviews. The token is optional
// and only affects is_favorited.
func (c *Client) Car(ctx context.Context, token string, id int) (Car, error) {
	var car Car
	err := c.call(ctx, http.MethodGet, fmt.Sprintf("cars/%d/", id), nil, token, nil, &car)
	return car, err
}

// DealerCars lists every car owned by the authenticated dealer, drafts included.
func (c *Client) DealerCars(ctx context.Context, token string) ([]Car, error) {
	page, err := getList[Car](ctx, c, "dealers/cars/", nil, token)
	return page.Results, err
}

// CreateCar lists a new car. With images the request is multipart,
// otherwise JSON.
func (c *Client) CreateCar(ctx context.Context, token string, in CarInput, images []File) (Car, error) {
	var car Car
	if len(images) > 0 {
		err := c.callMultipart(ctx, http.MethodPost, "dealers/cars/create/", token, in.fields(), "uploaded_images", images, &car)
		return car, err
	}
	err := c.call(ctx, http.MethodPost, "dealers/cars/create/", nil, token, in, &car)
	return car, err
}

// UpdateCar patches a dealer's car. New images are appended after the
// existing ones by the backend.
func (c *Client) UpdateCar(ctx context.Context, token string, id int, in CarInput, images []File) (Car, error) {
	var car Car
	path := fmt.Sprintf("dealers/cars/%d/", id)
	if len(images) > 0 {
		err := c.callMultipart(ctx, http.MethodPatch, path, token, in.fields(), "uploaded_images", images, &car)
		return car, err
	}
	err := c.call(ctx, http.MethodPatch, path, nil, token, in, &car)
	return car, err
}

func (c *Client) DeleteCar(ctx context.Context, token string, id int) error {
	return c.call(ctx, http.MethodDelete, fmt.Sprintf("dealers/cars/%d/", id), nil, token, nil, nil)
}

// fields renders the input as form fields. Strings are always sent so an
// edit can clear them; nil pointers are left out like JSON nulls.
func (in CarInput) fields() [][2]string {
	out := [][2]string{
		{"title", in.Title},
		{"make", in.Make},
		{"model", in.Model},
		{"year", strconv.Itoa(in.Year)},
		{"price", in.Price},
		{"location", in.Location},
		{"condition", in.Condition},
		{"description", in.Description},
		{"transmission", in.Transmission},
		{"fuel_type", in.FuelType},
	}
	if in.Mileage != nil {
		out = append(out, [2]string{"mileage", strconv.Itoa(*in.Mileage)})
	}
	if in.Category != nil {
		out = append(out, [2]string{"category", strconv.Itoa(*in.Category)})
	}
	if in.Published != nil {
		out = append(out, [2]string{"published", strconv.FormatBool(*in.Published)})
	}
	return out
}
