package integrationtests

import (
	"fmt"
	"os"
	"testing"
	"time"

	"lagerbok/pkg/client"
	"lagerbok/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	httpClient    *client.HttpClient
	storageClient *client.StorageClient
)

func TestMain(m *testing.M) {
	serverURL := os.Getenv("TEST_SERVER_URL")
	if serverURL == "" {
		serverURL = "http://localhost:8080"
	}

	httpClient = client.NewHttpClient(serverURL)
	storageClient = client.NewStorageClient(serverURL)

	os.Exit(m.Run())
}

func requireHealthy(t *testing.T) {
	t.Helper()
	if err := httpClient.WaitForHealthy(3 * time.Second); err != nil {
		t.Skipf("storages service not reachable: %v", err)
	}
}

func searchBody(start, end string) map[string]any {
	return map[string]any{
		"start_date": start,
		"end_date":   end,
	}
}

func TestGetAllReturnsSeededFleet(t *testing.T) {
	requireHealthy(t)

	resp, err := storageClient.GetAll(100, 0)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var result struct {
		Data       []model.Storage `json:"data"`
		TotalCount int64           `json:"total_count"`
	}
	require.NoError(t, resp.DecodeJSON(&result))

	assert.NotEmpty(t, result.Data)
	assert.Equal(t, int64(len(result.Data)), result.TotalCount)
	for _, st := range result.Data {
		assert.True(t, st.Active, "listing must only contain active storages")
	}
}

func TestGetByID(t *testing.T) {
	requireHealthy(t)

	resp, err := storageClient.GetByID(1)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	storage, err := storageClient.DecodeStorage(resp)
	require.NoError(t, err)
	assert.Equal(t, int64(1), storage.ID)
	assert.NotEmpty(t, storage.Slots)
}

func TestGetByIDUnknownIs404(t *testing.T) {
	requireHealthy(t)

	resp, err := storageClient.GetByID(999999)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode, client.GetErrorMessage(resp))
}

func TestSearchWithoutDatesIsEmpty(t *testing.T) {
	requireHealthy(t)

	resp, err := storageClient.Search(map[string]any{"min_available_meters": 50})
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	results, err := storageClient.DecodeSearchResults(resp)
	require.NoError(t, err)
	assert.Empty(t, results, "a search without a date range must match nothing")
}

func TestSearchWithDatesReturnsAvailability(t *testing.T) {
	requireHealthy(t)

	resp, err := storageClient.Search(searchBody("2026-01-05", "2026-01-09"))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	results, err := storageClient.DecodeSearchResults(resp)
	require.NoError(t, err)

	for _, r := range results {
		assert.Positive(t, r.AvailableSlotCount)
		assert.Len(t, r.AvailableSlots, r.AvailableSlotCount)
		assert.Equal(t, float64(r.AvailableSlotCount)*r.Storage.SlotVolume, r.AvailableMeters)
	}
}

func TestSearchInvalidDateIs400(t *testing.T) {
	requireHealthy(t)

	resp, err := storageClient.Search(searchBody("05-01-2026", "2026-01-09"))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestCapacityEndpoints(t *testing.T) {
	requireHealthy(t)

	resp, err := storageClient.Capacity(1)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var single struct {
		Data model.StorageCapacity `json:"data"`
	}
	require.NoError(t, resp.DecodeJSON(&single))
	assert.Positive(t, single.Data.TotalSlots)
	assert.LessOrEqual(t, single.Data.AvailableSlots, single.Data.TotalSlots)

	resp, err = storageClient.SystemCapacity()
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var system struct {
		Data model.StorageCapacity `json:"data"`
	}
	require.NoError(t, resp.DecodeJSON(&system))
	assert.GreaterOrEqual(t, system.Data.TotalSlots, single.Data.TotalSlots,
		fmt.Sprintf("fleet capacity %d cannot be below a single storage's %d",
			system.Data.TotalSlots, single.Data.TotalSlots))
}
