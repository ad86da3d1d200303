package client

import (
	"context"

	"covoit/pkg/model"
)

const profilePath = "/profil"

type ProfileClient struct {
	httpClient *HttpClient
}

func NewProfileClient(httpClient *HttpClient) *ProfileClient {
	return &ProfileClient{httpClient: httpClient}
}

func (c *ProfileClient) Get(ctx context.Context) (*model.Profile, error) {
	resp, err := c.httpClient.GET(ctx, profilePath)
	if err != nil {
		return nil, err
	}
	return c.DecodeProfile(resp)
}

func (c *ProfileClient) Update(ctx context.Context, update model.ProfileUpdate) (*model.Profile, error) {
	resp, err := c.httpClient.PUT(ctx, profilePath, update)
	if err != nil {
		return nil, err
	}
	return c.DecodeProfile(resp)
}

func (c *ProfileClient) DecodeProfile(resp *Response) (*model.Profile, error) {
	p, err := decodeData[model.Profile](resp, "profile")
	if err != nil {
		return nil, err
	}
	return &p, nil
}
