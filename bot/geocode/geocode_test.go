package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Options{
		BaseURL:   srv.URL,
		UserAgent: "test-agent",
		Client:    srv.Client(),
	})
}

func TestResolveReturnsAddressPair(t *testing.T) {
	var gotUA string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		require.Equal(t, "/reverse", r.URL.Path)
		q := r.URL.Query()
		require.Equal(t, "json", q.Get("format"))
		require.Equal(t, "18", q.Get("zoom"))
		require.Equal(t, "1", q.Get("addressdetails"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"Central Clinic","display_name":"Central Clinic, 12 Main St, Springfield"}`))
	})

	res := client.Resolve(context.Background(), 41.311081, 69.240562)

	assert.Equal(t, "test-agent", gotUA)
	assert.Equal(t, "Central Clinic", res.ShortAddress)
	assert.Equal(t, "Central Clinic, 12 Main St, Springfield", res.FullAddress)
	assert.False(t, res.Degraded)
}

func TestResolveFallsBackToPlaceholderName(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"display_name":"Somewhere on a road"}`))
	})

	res := client.Resolve(context.Background(), 1, 2)

	assert.Equal(t, UnknownLocation, res.ShortAddress)
	assert.Equal(t, "Somewhere on a road", res.FullAddress)
	assert.False(t, res.Degraded)
}

func TestResolveDegradesOnEmptyBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	})

	res := client.Resolve(context.Background(), 1, 2)

	assert.Equal(t, UnknownLocation, res.ShortAddress)
	assert.Empty(t, res.FullAddress)
	assert.True(t, res.Degraded)
}

func TestResolveDegradesOnServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	res := client.Resolve(context.Background(), 1, 2)

	assert.Equal(t, UnknownLocation, res.ShortAddress)
	assert.True(t, res.Degraded)
}

func TestResolveDegradesOnTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(Options{
		BaseURL: srv.URL,
		Client:  &http.Client{Timeout: 20 * time.Millisecond},
	})

	res := client.Resolve(context.Background(), 1, 2)

	assert.Equal(t, UnknownLocation, res.ShortAddress)
	assert.True(t, res.Degraded)
}
