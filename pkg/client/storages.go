package client

import (
	"fmt"
	"lagerbok/pkg/model"
)

type StorageClient struct {
	httpClient *HttpClient
}

func NewStorageClient(baseUrl string) *StorageClient {
	return &StorageClient{
		httpClient: NewHttpClient(baseUrl),
	}
}

func (c *StorageClient) GetAll(limit int, offset int64) (*Response, error) {
	path := fmt.Sprintf("/api/v1/storages?limit=%d&offset=%d", limit, offset)
	return c.httpClient.GET(path)
}

func (c *StorageClient) GetByID(id int64) (*Response, error) {
	return c.httpClient.GET(fmt.Sprintf("/api/v1/storages/id/%d", id))
}

func (c *StorageClient) Search(body any) (*Response, error) {
	return c.httpClient.POST("/api/v1/storages/search", body)
}

func (c *StorageClient) Capacity(id int64) (*Response, error) {
	return c.httpClient.GET(fmt.Sprintf("/api/v1/storages/id/%d/capacity", id))
}

func (c *StorageClient) SystemCapacity() (*Response, error) {
	return c.httpClient.GET("/api/v1/storages/capacity")
}

func (c *StorageClient) DecodeStorage(resp *Response) (*model.Storage, error) {
	var result struct {
		Data model.Storage `json:"data"`
	}
	if err := resp.DecodeJSON(&result); err != nil {
		return nil, err
	}
	return &result.Data, nil
}

func (c *StorageClient) DecodeSearchResults(resp *Response) ([]model.SearchResult, error) {
	var result struct {
		Data []model.SearchResult `json:"data"`
	}
	if err := resp.DecodeJSON(&result); err != nil {
		return nil, err
	}
	return result.Data, nil
}
