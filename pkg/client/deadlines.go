package client

import "lagerbok/pkg/model"

type DeadlineClient struct {
	httpClient *HttpClient
}

func NewDeadlineClient(baseUrl string) *DeadlineClient {
	return &DeadlineClient{
		httpClient: NewHttpClient(baseUrl),
	}
}

func (c *DeadlineClient) Expiring() (*Response, error) {
	return c.httpClient.GET("/api/v1/deadlines")
}

func (c *DeadlineClient) DecodeExpiring(resp *Response) ([]model.ExpiringBooking, error) {
	var result struct {
		Data []model.ExpiringBooking `json:"data"`
	}
	if err := resp.DecodeJSON(&result); err != nil {
		return nil, err
	}
	return result.Data, nil
}
