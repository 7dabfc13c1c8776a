// Package auth talks to the authentication service and, on success, hands the
// issued session to the session manager.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/atinyakov/FotoShop/internal/client/transport"
	"github.com/atinyakov/FotoShop/internal/models"
)

const (
	pathLogin    = "/auth/login"
	pathRegister = "/auth/register"

	fallbackLogin    = "login failed"
	fallbackRegister = "registration failed"
)

// ErrInvalidResponse is returned when a 2xx answer does not carry a usable
// token and user.
var ErrInvalidResponse = errors.New("authentication service returned an unusable session")

// SessionSaver receives the session after a successful login or registration.
type SessionSaver interface {
	Save(ctx context.Context, token string, user models.User) error
}

// Client is stateless; concurrent calls are not sequenced.
type Client struct {
	http    *http.Client
	baseURL string
	session SessionSaver
	log     *zap.Logger
}

func New(httpClient *http.Client, baseURL string, session SessionSaver, log *zap.Logger) *Client {
	return &Client{http: httpClient, baseURL: baseURL, session: session, log: log}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, email, password string) (models.User, error) {
	return c.authenticate(ctx, pathLogin, fallbackLogin, loginRequest{Email: email, Password: password})
}

// Register creates an account; the service answers with a ready session.
func (c *Client) Register(ctx context.Context, name, email, password string) (models.User, error) {
	return c.authenticate(ctx, pathRegister, fallbackRegister, registerRequest{Name: name, Email: email, Password: password})
}

func (c *Client) authenticate(ctx context.Context, path, fallback string, body any) (models.User, error) {
	var resp models.AuthResponse
	err := transport.Do(ctx, c.http, transport.Request{
		Method:   http.MethodPost,
		URL:      transport.Endpoint(c.baseURL, path),
		Body:     body,
		Fallback: fallback,
	}, &resp)
	if errors.Is(err, transport.ErrDecode) {
		c.log.Warn("authentication service sent an undecodable body", zap.String("path", path), zap.Error(err))
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	if err != nil {
		c.log.Info("authentication request failed", zap.String("path", path), zap.Error(err))
		return models.User{}, err
	}

	if resp.Token == "" || resp.User.ID <= 0 || resp.User.Name == "" || resp.User.Email == "" {
		return models.User{}, ErrInvalidResponse
	}
	if err := c.session.Save(ctx, resp.Token, resp.User); err != nil {
		return resp.User, fmt.Errorf("save session: %w", err)
	}
	return resp.User, nil
}
