package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hadas32/smart-parking-hub/pkg/parking"
)

// ListParkings fetches every parking location. The endpoint is an
// anonymous read.
func (c *Client) ListParkings(ctx context.Context) ([]parking.Parking, error) {
	return receive[[]parking.Parking](ctx, c, http.MethodGet, "api/Parkings", nil, authNone)
}

// GetParking fetches a single parking by id.
func (c *Client) GetParking(ctx context.Context, id int) (*parking.Parking, error) {
	return receive[*parking.Parking](ctx, c, http.MethodGet, fmt.Sprintf("api/Parkings/%d", id), nil, authNone)
}

// CreateParking creates a parking location. Requires a bearer token.
func (c *Client) CreateParking(ctx context.Context, model parking.ParkingPost) (*parking.Parking, error) {
	if err := model.Validate(); err != nil {
		return nil, err
	}
	return receive[*parking.Parking](ctx, c, http.MethodPost, "api/Parkings", model, authRequired)
}

// UpdateParking updates a parking's name, capacity, and hourly price.
func (c *Client) UpdateParking(ctx context.Context, id int, model parking.ParkingPut) (*parking.Parking, error) {
	model.ID = id
	if err := model.Validate(); err != nil {
		return nil, err
	}
	return receive[*parking.Parking](ctx, c, http.MethodPut, fmt.Sprintf("api/Parkings/%d", id), model, authNone)
}

// DeleteParking removes a parking location and its spots. Requires a
// bearer token; the service answers 204 with no body.
func (c *Client) DeleteParking(ctx context.Context, id int) error {
	_, err := c.send(ctx, http.MethodDelete, fmt.Sprintf("api/Parkings/%d", id), nil, authRequired)
	return err
}
