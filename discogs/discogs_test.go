package discogs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := New("test-token")
	c.baseURL = srv.URL
	return c
}

func TestReleaseGenres(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "/database/search", req.URL.Path)
		assert.Equal(t, "Artist X Album 1", req.URL.Query().Get("q"))
		assert.Equal(t, "Discogs token=test-token", req.Header.Get("Authorization"))
		w.Write([]byte(`{"results":[{"genre":["Rock"],"style":["Shoegaze","Dream Pop"]}]}`))
	})

	genres, err := c.ReleaseGenres(context.Background(), "Artist X Album 1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Rock", "Shoegaze", "Dream Pop"}, genres)
}

func TestReleaseGenresNoResults(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`{"results":[]}`))
	})

	genres, err := c.ReleaseGenres(context.Background(), "nothing")
	require.NoError(t, err)
	assert.Nil(t, genres)
}
