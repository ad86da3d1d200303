package client

import (
	"context"
	"net/url"
	"strconv"
	"time"

	apperrors "covoit/pkg/errors"
	"covoit/pkg/model"
)

// QueryTimeLayout is the instant format of availability query parameters.
const QueryTimeLayout = time.RFC3339

var vehiclePaths = map[model.VehicleKind]string{
	model.PersonalVehicle: "/vehicules-personnels",
	model.CompanyVehicle:  "/vehicules-entreprise",
}

type VehicleClient struct {
	httpClient *HttpClient
	kind       model.VehicleKind
	basePath   string
}

func NewVehicleClient(httpClient *HttpClient, kind model.VehicleKind) *VehicleClient {
	return &VehicleClient{
		httpClient: httpClient,
		kind:       kind,
		basePath:   vehiclePaths[kind],
	}
}

func (c *VehicleClient) Kind() model.VehicleKind {
	return c.kind
}

func (c *VehicleClient) List(ctx context.Context) ([]model.Vehicle, error) {
	resp, err := c.httpClient.GET(ctx, c.basePath)
	if err != nil {
		return nil, err
	}
	return c.DecodeVehicles(resp)
}

func (c *VehicleClient) Get(ctx context.Context, id int64) (*model.Vehicle, error) {
	resp, err := c.httpClient.GET(ctx, c.path(id))
	if err != nil {
		return nil, err
	}
	return c.DecodeVehicle(resp)
}

func (c *VehicleClient) Create(ctx context.Context, v model.Vehicle) (*model.Vehicle, error) {
	resp, err := c.httpClient.POST(ctx, c.basePath, v)
	if err != nil {
		return nil, err
	}
	return c.DecodeVehicle(resp)
}

func (c *VehicleClient) Update(ctx context.Context, id int64, v model.Vehicle) (*model.Vehicle, error) {
	resp, err := c.httpClient.PUT(ctx, c.path(id), v)
	if err != nil {
		return nil, err
	}
	return c.DecodeVehicle(resp)
}

func (c *VehicleClient) Delete(ctx context.Context, id int64) error {
	_, err := c.httpClient.DELETE(ctx, c.path(id))
	return err
}

// Available asks the backend which company vehicles are free over w.
// Fleet-wide availability is never computed locally.
func (c *VehicleClient) Available(ctx context.Context, w model.TimeWindow) ([]model.Vehicle, error) {
	if c.kind != model.CompanyVehicle {
		return nil, apperrors.InvalidInput("availability is only offered for company vehicles")
	}

	q := url.Values{}
	q.Set("dateDebut", w.Start.Format(QueryTimeLayout))
	q.Set("dateFin", w.End.Format(QueryTimeLayout))

	resp, err := c.httpClient.GET(ctx, c.basePath+"/dispo?"+q.Encode())
	if err != nil {
		return nil, err
	}
	return c.DecodeVehicles(resp)
}

func (c *VehicleClient) DecodeVehicle(resp *Response) (*model.Vehicle, error) {
	v, err := decodeData[model.Vehicle](resp, "vehicle")
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *VehicleClient) DecodeVehicles(resp *Response) ([]model.Vehicle, error) {
	return decodeData[[]model.Vehicle](resp, "vehicle list")
}

func (c *VehicleClient) path(id int64) string {
	return c.basePath + "/" + strconv.FormatInt(id, 10)
}
