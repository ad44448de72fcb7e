package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hadas32/smart-parking-hub/pkg/parking"
)

// ListSpots fetches every spot across all parkings. Anonymous read.
func (c *Client) ListSpots(ctx context.Context) ([]parking.Spot, error) {
	return receive[[]parking.Spot](ctx, c, http.MethodGet, "api/Spots", nil, authNone)
}

// GetSpot fetches a single spot by id.
func (c *Client) GetSpot(ctx context.Context, id int) (*parking.Spot, error) {
	return receive[*parking.Spot](ctx, c, http.MethodGet, fmt.Sprintf("api/Spots/%d", id), nil, authNone)
}

// CreateSpot adds a spot to a parking. Requires a bearer token.
func (c *Client) CreateSpot(ctx context.Context, model parking.SpotPost) (*parking.Spot, error) {
	if err := model.Validate(); err != nil {
		return nil, err
	}
	return receive[*parking.Spot](ctx, c, http.MethodPost, "api/Spots", model, authRequired)
}

// UpdateSpot overrides a spot's occupancy state.
func (c *Client) UpdateSpot(ctx context.Context, id int, model parking.SpotPut) (*parking.Spot, error) {
	model.ID = id
	if err := model.Validate(); err != nil {
		return nil, err
	}
	return receive[*parking.Spot](ctx, c, http.MethodPut, fmt.Sprintf("api/Spots/%d", id), model, authNone)
}

// DeleteSpot removes a spot. Requires a bearer token; the service answers
// 204 with no body.
func (c *Client) DeleteSpot(ctx context.Context, id int) error {
	_, err := c.send(ctx, http.MethodDelete, fmt.Sprintf("api/Spots/%d", id), nil, authRequired)
	return err
}
