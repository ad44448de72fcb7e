package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hadas32/smart-parking-hub/pkg/parking"
)

// ListCars fetches the cars currently checked in. The endpoint requires a
// bearer token; with no stored token the call is rejected locally with
// parking.ErrNoCredential before any request is sent.
func (c *Client) ListCars(ctx context.Context) ([]parking.Car, error) {
	return receive[[]parking.Car](ctx, c, http.MethodGet, "api/Cars", nil, authRequired)
}

// GetCar fetches a single checked-in car by id. Requires a bearer token.
func (c *Client) GetCar(ctx context.Context, id int) (*parking.Car, error) {
	return receive[*parking.Car](ctx, c, http.MethodGet, fmt.Sprintf("api/Cars/%d", id), nil, authRequired)
}

// CreateCar checks a car in, occupying a free spot in the requested
// parking. A duplicate license number is rejected by the service.
func (c *Client) CreateCar(ctx context.Context, model parking.CarPost) (*parking.Car, error) {
	if err := model.Validate(); err != nil {
		return nil, err
	}
	return receive[*parking.Car](ctx, c, http.MethodPost, "api/Cars", model, authNone)
}

// UpdateCar edits a parked car's owner name.
func (c *Client) UpdateCar(ctx context.Context, id int, model parking.CarPut) (*parking.Car, error) {
	if err := model.Validate(); err != nil {
		return nil, err
	}
	return receive[*parking.Car](ctx, c, http.MethodPut, fmt.Sprintf("api/Cars/%d", id), model, authNone)
}

// DeleteCar checks a car out: the spot is freed, payment is finalized, and
// the service returns a summary with the amount due. Requires a bearer
// token.
func (c *Client) DeleteCar(ctx context.Context, id int) (*parking.Checkout, error) {
	return receive[*parking.Checkout](ctx, c, http.MethodDelete, fmt.Sprintf("api/Cars/%d", id), nil, authRequired)
}
