package client

import (
	"context"

	"covoit/pkg/model"
)

const (
	loginPath    = "/api/auth/login"
	registerPath = "/api/auth/register"
)

type AuthClient struct {
	httpClient *HttpClient
}

func NewAuthClient(httpClient *HttpClient) *AuthClient {
	return &AuthClient{httpClient: httpClient}
}

// Login exchanges credentials for a signed token.
func (c *AuthClient) Login(ctx context.Context, creds model.Credentials) (*model.AuthResponse, error) {
	resp, err := c.httpClient.POST(ctx, loginPath, creds)
	if err != nil {
		return nil, err
	}
	return c.DecodeAuth(resp)
}

// Register creates an account. The token is empty when the backend
// requires email verification first.
func (c *AuthClient) Register(ctx context.Context, input model.RegisterInput) (*model.AuthResponse, error) {
	resp, err := c.httpClient.POST(ctx, registerPath, input)
	if err != nil {
		return nil, err
	}
	return c.DecodeAuth(resp)
}

func (c *AuthClient) DecodeAuth(resp *Response) (*model.AuthResponse, error) {
	auth, err := decodeData[model.AuthResponse](resp, "auth response")
	if err != nil {
		return nil, err
	}
	return &auth, nil
}
