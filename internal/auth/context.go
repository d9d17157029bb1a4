// Package auth holds the session-lifetime authentication state: the
// current user and the operations that change it. A Context is built once
// at startup and passed down explicitly.
package auth

import (
	"context"
	"log"
	"sync"

	"github.com/labstock-id/labstock/internal/api"
	"github.com/labstock-id/labstock/internal/models"
	"github.com/labstock-id/labstock/internal/session"
)

// Context resolves and tracks the current user. "Authenticated" means a
// user is present, which only happens after a successful login/register
// or profile fetch — never from token presence alone.
type Context struct {
	mu      sync.Mutex
	api     *api.Client
	tokens  *session.Store
	user    *models.User
	loading bool
}

func NewContext(client *api.Client, tokens *session.Store) *Context {
	return &Context{api: client, tokens: tokens, loading: true}
}

// Refresh resolves the current user from the persisted token. No token
// resolves immediately to no user without touching the network. A token
// that fails the profile fetch is treated as expired: it is cleared and
// the session ends with no user. This is the only place expired sessions
// are detected.
func (c *Context) Refresh(ctx context.Context) {
	defer func() {
		c.mu.Lock()
		c.loading = false
		c.mu.Unlock()
	}()

	if !c.tokens.Authenticated() {
		c.setUser(nil)
		return
	}

	user, err := c.api.Profile(ctx)
	if err != nil {
		log.Printf("failed to fetch user profile: %v", err)
		if err := c.tokens.Clear(); err != nil {
			log.Printf("failed to clear session token: %v", err)
		}
		c.setUser(nil)
		return
	}
	c.setUser(&user)
}

// Login authenticates with the backend and, on success, persists the
// returned token and adopts the returned user. On failure the previous
// state is left untouched and the API error is returned.
func (c *Context) Login(ctx context.Context, email, password string) error {
	resp, err := c.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return c.adopt(resp)
}

// Register creates an account; same contract as Login.
func (c *Context) Register(ctx context.Context, name, email, password string) error {
	resp, err := c.api.Register(ctx, name, email, password)
	if err != nil {
		return err
	}
	return c.adopt(resp)
}

// Logout clears the token and the current user. No server call is made.
func (c *Context) Logout() {
	if err := c.tokens.Clear(); err != nil {
		log.Printf("failed to clear session token: %v", err)
	}
	c.setUser(nil)
}

func (c *Context) adopt(resp models.AuthResponse) error {
	if err := c.tokens.SetToken(resp.Token); err != nil {
		return err
	}
	user := resp.User
	c.setUser(&user)
	return nil
}

// CurrentUser returns the resolved user, or nil.
func (c *Context) CurrentUser() *models.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.user == nil {
		return nil
	}
	u := *c.user
	return &u
}

// Authenticated reports whether a current user is present.
func (c *Context) Authenticated() bool {
	return c.CurrentUser() != nil
}

// Loading reports whether the initial resolution has completed yet.
func (c *Context) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

func (c *Context) setUser(u *models.User) {
	c.mu.Lock()
	c.user = u
	c.mu.Unlock()
}
