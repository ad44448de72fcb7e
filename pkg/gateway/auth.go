package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hadas32/smart-parking-hub/pkg/parking"
)

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges operator credentials for a bearer token. The call itself
// is unauthenticated.
func (c *Client) Login(ctx context.Context, creds parking.Login) (string, error) {
	if creds.UserName == "" || creds.Password == "" {
		return "", fmt.Errorf("login requires userName and password")
	}
	rsp, err := receive[loginResponse](ctx, c, http.MethodPost, "api/Auth/login", creds, authNone)
	if err != nil {
		return "", err
	}
	if rsp.Token == "" {
		return "", fmt.Errorf("%w: login response carried no token", parking.ErrBadResponse)
	}
	return rsp.Token, nil
}
