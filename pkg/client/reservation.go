package client

import (
	"context"
	"strconv"

	"covoit/pkg/model"
)

const reservationsPath = "/reservations-vehicules"

type ReservationClient struct {
	httpClient *HttpClient
}

func NewReservationClient(httpClient *HttpClient) *ReservationClient {
	return &ReservationClient{httpClient: httpClient}
}

// Mine lists the caller's company vehicle reservations.
func (c *ReservationClient) Mine(ctx context.Context) ([]model.ReservationInterval, error) {
	resp, err := c.httpClient.GET(ctx, reservationsPath)
	if err != nil {
		return nil, err
	}
	return decodeData[[]model.ReservationInterval](resp, "reservation list")
}

func (c *ReservationClient) Create(ctx context.Context, input model.VehicleReservationInput) (*model.ReservationInterval, error) {
	resp, err := c.httpClient.POST(ctx, reservationsPath, input)
	if err != nil {
		return nil, err
	}
	return c.DecodeReservation(resp, input)
}

func (c *ReservationClient) Update(ctx context.Context, id int64, input model.VehicleReservationInput) (*model.ReservationInterval, error) {
	resp, err := c.httpClient.PUT(ctx, reservationPath(id), input)
	if err != nil {
		return nil, err
	}
	r, err := c.DecodeReservation(resp, input)
	if err != nil {
		return nil, err
	}
	if r.ID == 0 {
		r.ID = id
	}
	return r, nil
}

func (c *ReservationClient) Delete(ctx context.Context, id int64) error {
	_, err := c.httpClient.DELETE(ctx, reservationPath(id))
	return err
}

// DecodeReservation falls back to the submitted input when the backend
// answers with an empty body.
func (c *ReservationClient) DecodeReservation(resp *Response, input model.VehicleReservationInput) (*model.ReservationInterval, error) {
	r, err := decodeData[model.ReservationInterval](resp, "reservation")
	if err != nil {
		return nil, err
	}
	if r.VehicleID == 0 && r.Start.IsZero() {
		r.VehicleID = input.VehicleID
		r.TimeWindow = input.TimeWindow
	}
	return &r, nil
}

func reservationPath(id int64) string {
	return reservationsPath + "/" + strconv.FormatInt(id, 10)
}
