package client

import (
	"context"
	"strconv"

	"covoit/pkg/model"
)

const adminUsersPath = "/admin/utilisateurs"

type AdminUserClient struct {
	httpClient *HttpClient
}

func NewAdminUserClient(httpClient *HttpClient) *AdminUserClient {
	return &AdminUserClient{httpClient: httpClient}
}

func (c *AdminUserClient) List(ctx context.Context) ([]model.Profile, error) {
	resp, err := c.httpClient.GET(ctx, adminUsersPath)
	if err != nil {
		return nil, err
	}
	return decodeData[[]model.Profile](resp, "user list")
}

func (c *AdminUserClient) SetStatus(ctx context.Context, id int64, update model.StatusUpdate) error {
	_, err := c.httpClient.PUT(ctx, adminUserPath(id)+"/statut", update)
	return err
}

func (c *AdminUserClient) Delete(ctx context.Context, id int64) error {
	_, err := c.httpClient.DELETE(ctx, adminUserPath(id))
	return err
}

func adminUserPath(id int64) string {
	return adminUsersPath + "/" + strconv.FormatInt(id, 10)
}
