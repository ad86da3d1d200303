package client

import (
	"context"
	"strconv"

	"covoit/pkg/model"
)

const listingsPath = "/covoit"

type ListingClient struct {
	httpClient *HttpClient
}

func NewListingClient(httpClient *HttpClient) *ListingClient {
	return &ListingClient{httpClient: httpClient}
}

func (c *ListingClient) List(ctx context.Context) ([]model.Listing, error) {
	resp, err := c.httpClient.GET(ctx, listingsPath+"/")
	if err != nil {
		return nil, err
	}
	return c.DecodeListings(resp)
}

func (c *ListingClient) Get(ctx context.Context, id int64) (*model.Listing, error) {
	resp, err := c.httpClient.GET(ctx, listingPath(id))
	if err != nil {
		return nil, err
	}
	return c.DecodeListing(resp)
}

func (c *ListingClient) Create(ctx context.Context, input model.ListingInput) (*model.Listing, error) {
	resp, err := c.httpClient.POST(ctx, listingsPath, input)
	if err != nil {
		return nil, err
	}
	return c.DecodeListing(resp)
}

func (c *ListingClient) Update(ctx context.Context, id int64, input model.ListingInput) (*model.Listing, error) {
	resp, err := c.httpClient.PUT(ctx, listingPath(id), input)
	if err != nil {
		return nil, err
	}
	return c.DecodeListing(resp)
}

func (c *ListingClient) Delete(ctx context.Context, id int64) error {
	_, err := c.httpClient.DELETE(ctx, listingPath(id))
	return err
}

// Reserve books one passenger seat on the listing.
func (c *ListingClient) Reserve(ctx context.Context, id int64) error {
	_, err := c.httpClient.POST(ctx, reservePath(id), nil)
	return err
}

func (c *ListingClient) CancelReservation(ctx context.Context, id int64) error {
	_, err := c.httpClient.DELETE(ctx, reservePath(id))
	return err
}

func (c *ListingClient) Participants(ctx context.Context, id int64) (*model.Roster, error) {
	resp, err := c.httpClient.GET(ctx, listingPath(id)+"/participants")
	if err != nil {
		return nil, err
	}
	roster, err := decodeData[model.Roster](resp, "roster")
	if err != nil {
		return nil, err
	}
	return &roster, nil
}

// MyReservations lists the listings the caller holds a seat on.
func (c *ListingClient) MyReservations(ctx context.Context) ([]model.Listing, error) {
	resp, err := c.httpClient.GET(ctx, listingsPath+"/mes-reservations")
	if err != nil {
		return nil, err
	}
	return c.DecodeListings(resp)
}

func (c *ListingClient) DecodeListing(resp *Response) (*model.Listing, error) {
	listing, err := decodeData[model.Listing](resp, "listing")
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

func (c *ListingClient) DecodeListings(resp *Response) ([]model.Listing, error) {
	return decodeData[[]model.Listing](resp, "listing list")
}

func listingPath(id int64) string {
	return listingsPath + "/" + strconv.FormatInt(id, 10)
}

func reservePath(id int64) string {
	return listingsPath + "/reserve/" + strconv.FormatInt(id, 10)
}
