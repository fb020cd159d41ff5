package client

import (
	"fmt"
	"lagerbok/pkg/model"
	"net/url"
)

type BookingClient struct {
	httpClient *HttpClient
}

func NewBookingClient(baseUrl string) *BookingClient {
	return &BookingClient{
		httpClient: NewHttpClient(baseUrl),
	}
}

func (c *BookingClient) Commit(body any) (*Response, error) {
	return c.httpClient.POST("/api/v1/bookings", body)
}

func (c *BookingClient) CommitIdempotent(body any, idempotencyKey string) (*Response, error) {
	return c.httpClient.POSTWithHeaders("/api/v1/bookings", body, map[string]string{
		"Idempotency-Key": idempotencyKey,
	})
}

func (c *BookingClient) Suggest(body any) (*Response, error) {
	return c.httpClient.POST("/api/v1/bookings/suggest", body)
}

func (c *BookingClient) Remove(storageID, slotID int64, bookingID string) (*Response, error) {
	q := url.Values{}
	q.Set("storage_id", fmt.Sprintf("%d", storageID))
	q.Set("slot_id", fmt.Sprintf("%d", slotID))

	path := "/api/v1/bookings/id/" + url.PathEscape(bookingID) + "?" + q.Encode()
	return c.httpClient.DELETE(path)
}

func (c *BookingClient) DecodeConfirmation(resp *Response) (*model.Confirmation, error) {
	var result struct {
		Data model.Confirmation `json:"data"`
	}
	if err := resp.DecodeJSON(&result); err != nil {
		return nil, err
	}
	return &result.Data, nil
}
