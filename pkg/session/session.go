package session

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hadas32/smart-parking-hub/internal/log"
	"github.com/hadas32/smart-parking-hub/pkg/parking"
)

// LoginGateway is the slice of the gateway the controller needs.
type LoginGateway interface {
	Login(ctx context.Context, creds parking.Login) (string, error)
}

// Evictor empties every cached resource collection. A torn-down session
// must not leave credentialed data readable from cache.
type Evictor interface {
	EvictAll()
}

// Controller owns the login/logout state machine. It establishes a session
// by exchanging credentials for a bearer token, persists the token in its
// Store, and tears everything down on logout or when the gateway reports
// an authorization failure.
type Controller struct {
	// RedirectToLogin, when set, runs after a forced teardown so the UI
	// can send the operator back to the login entry point.
	RedirectToLogin func()

	store  Store
	gw     LoginGateway
	caches Evictor

	mu       sync.Mutex
	loggedIn bool
}

// NewController determines the initial state from the Store: a stored,
// unexpired token means logged in, without revalidating against the
// service until the first authorized call.
func NewController(store Store, gw LoginGateway, caches Evictor) *Controller {
	c := &Controller{store: store, gw: gw, caches: caches}
	if token, ok := store.Token(); ok {
		if Expired(token) {
			log.Info("Stored token is expired; starting logged out")
			if err := store.Clear(); err != nil {
				log.Warning("Failed to clear expired token: %s", err)
			}
		} else {
			c.loggedIn = true
		}
	}
	return c
}

// Expired inspects a token's exp claim without verifying its signature;
// validity is the service's call, this only avoids sending a token that is
// already known to be dead. Opaque (non-JWT) tokens are never considered
// expired.
func Expired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

// LoggedIn reports whether a session is active.
func (c *Controller) LoggedIn() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loggedIn
}

// Login exchanges credentials for a bearer token and stores it. On failure
// the state remains logged out and the gateway's error is surfaced
// unchanged.
func (c *Controller) Login(ctx context.Context, creds parking.Login) error {
	token, err := c.gw.Login(ctx, creds)
	if err != nil {
		return err
	}
	if err := c.store.SetToken(token); err != nil {
		// The session still works for this process; it just won't survive
		// a restart.
		log.Warning("Failed to persist token: %s", err)
	}
	c.mu.Lock()
	c.loggedIn = true
	c.mu.Unlock()
	log.Info("Session established")
	return nil
}

// Logout clears the stored credential and evicts every cached collection.
func (c *Controller) Logout() {
	c.teardown()
	log.Info("Session closed")
}

// HandleAuthFailure performs the same teardown as Logout and then
// schedules a redirect to the login entry point. The gateway invokes this
// for every 401, regardless of which operation triggered it.
func (c *Controller) HandleAuthFailure() {
	c.teardown()
	if c.RedirectToLogin != nil {
		c.RedirectToLogin()
	}
}

func (c *Controller) teardown() {
	if err := c.store.Clear(); err != nil {
		log.Warning("Failed to clear stored token: %s", err)
	}
	if c.caches != nil {
		c.caches.EvictAll()
	}
	c.mu.Lock()
	c.loggedIn = false
	c.mu.Unlock()
}
