// Package gateway implements the typed request layer for the parking
// management service. Each resource kind gets a set of operations that
// serialize a validated payload, attach the bearer credential when the
// endpoint requires one, and decode the response into its typed shape.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"runtime/debug"
	"strings"
	"sync"

	"golang.org/x/time/rate"

	"github.com/hadas32/smart-parking-hub/internal/log"
	"github.com/hadas32/smart-parking-hub/pkg/parking"
)

// MaxResponseLength caps how much of a response body the client reads.
var MaxResponseLength int64 = 512 * 1024

// defaultRequestRate limits outbound requests so that an eager invalidation
// burst cannot hammer the service.
const defaultRequestRate = 20

// TokenSource supplies the current bearer credential, if any.
type TokenSource interface {
	Token() (string, bool)
}

// authMode flags whether an endpoint requires the bearer credential. The
// service exposes anonymous reads for Parkings and Spots; Cars are always
// credentialed.
type authMode int

const (
	authNone     authMode = iota // send without an Authorization header
	authRequired                 // reject locally if no token is stored
)

func buildUserAgent() string {
	agent := "smart-parking-hub"
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return agent
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		agent += "/" + v
	}
	return agent
}

// Client issues typed requests against a parking management service.
type Client struct {
	// The default UserAgent is derived from build info, but can be overridden.
	UserAgent string

	baseURL string
	client  http.Client
	tokens  TokenSource
	limiter *rate.Limiter

	mu            sync.Mutex
	onAuthFailure func()
}

// New returns a Client for the service at serverURL (scheme and host, e.g.
// "https://localhost:7001"). The tokens source may be nil for a client that
// only performs anonymous reads.
func New(serverURL string, tokens TokenSource) *Client {
	return &Client{
		UserAgent: buildUserAgent(),
		baseURL:   strings.TrimRight(serverURL, "/"),
		tokens:    tokens,
		limiter:   rate.NewLimiter(rate.Limit(defaultRequestRate), defaultRequestRate),
	}
}

// SetAuthFailureHook registers f to run whenever the service answers 401.
// The hook runs before the failure is returned to the caller, so a
// subsequent call in the same tick already observes a torn-down session.
func (c *Client) SetAuthFailureHook(f func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onAuthFailure = f
}

func (c *Client) authFailed() {
	c.mu.Lock()
	f := c.onAuthFailure
	c.mu.Unlock()
	if f != nil {
		f()
	}
}

// send issues one HTTP request and returns the response body on a 2xx
// status. A nil payload sends no body. Non-2xx statuses yield a
// *parking.StatusError carrying the body verbatim; 401 additionally
// triggers the auth-failure hook before returning.
func (c *Client) send(ctx context.Context, method, endpoint string, payload interface{}, auth authMode) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &parking.RequestError{Err: err}
	}

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(encoded)
	}

	url := c.baseURL + "/" + endpoint
	request, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("error constructing request to %s: %w", endpoint, err)
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "*/*")
	request.Header.Set("User-Agent", c.UserAgent)
	if auth == authRequired {
		token, ok := c.token()
		if !ok {
			return nil, parking.ErrNoCredential
		}
		request.Header.Set("Authorization", "Bearer "+token)
	}

	log.Debug("%s %s", method, url)
	response, err := c.client.Do(request)
	if err != nil {
		return nil, &parking.RequestError{Err: err}
	}
	defer response.Body.Close()

	reader := io.LimitedReader{R: response.Body, N: MaxResponseLength}
	responseBody, err := io.ReadAll(&reader)
	if err != nil {
		return nil, &parking.RequestError{Err: err}
	}
	log.Debug("Service returned %d: %s", response.StatusCode, responseBody)

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return responseBody, nil
	}
	if response.StatusCode == http.StatusUnauthorized {
		log.Warning("Credential rejected by service; tearing down session")
		c.authFailed()
	}
	return nil, &parking.StatusError{Code: response.StatusCode, Message: string(responseBody)}
}

func (c *Client) token() (string, bool) {
	if c.tokens == nil {
		return "", false
	}
	return c.tokens.Token()
}

// receive sends a request and decodes the JSON response into T. A success
// body that does not match T's shape is surfaced as parking.ErrBadResponse
// rather than trusted implicitly.
func receive[T any](ctx context.Context, c *Client, method, endpoint string, payload interface{}, auth authMode) (T, error) {
	var out T
	body, err := c.send(ctx, method, endpoint, payload, auth)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return out, fmt.Errorf("%w: %s", parking.ErrBadResponse, err)
	}
	return out, nil
}
