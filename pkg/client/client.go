package client

import (
	"time"

	"covoit/pkg/logger"
	"covoit/pkg/model"
)

// Client groups one wrapper per backend resource over a shared transport.
type Client struct {
	HTTP         *HttpClient
	Auth         *AuthClient
	Listings     *ListingClient
	Personal     *VehicleClient
	Company      *VehicleClient
	Reservations *ReservationClient
	Profile      *ProfileClient
	Admin        *AdminUserClient
}

func New(baseURL string, timeout time.Duration, tokens TokenSource, log *logger.Logger) *Client {
	httpClient := NewHttpClient(baseURL, timeout)
	httpClient.Tokens = tokens
	if log != nil {
		httpClient.Log = log
	}

	return &Client{
		HTTP:         httpClient,
		Auth:         NewAuthClient(httpClient),
		Listings:     NewListingClient(httpClient),
		Personal:     NewVehicleClient(httpClient, model.PersonalVehicle),
		Company:      NewVehicleClient(httpClient, model.CompanyVehicle),
		Reservations: NewReservationClient(httpClient),
		Profile:      NewProfileClient(httpClient),
		Admin:        NewAdminUserClient(httpClient),
	}
}
