package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atinyakov/FotoShop/internal/client/transport"
)

const listing = `{"success":true,"message":"ok","data":[
 {"id":1,"title":"Dunes","description":"sand","price":12.5,"stock":3,"category":"nature","categoryId":2,"imageUrl":"/img/1.jpg","active":true,"createdAt":"2024-05-01T10:00:00Z"},
 {"id":2,"title":"Hidden","price":1,"stock":1,"category":"misc","imageUrl":"/img/2.jpg","active":false,"createdAt":"2024-05-01T10:00:00Z"},
 {"id":3,"title":"Harbor","price":30,"stock":0,"category":"city","imageUrl":"/img/3.jpg","active":true,"createdAt":"2024-05-02T10:00:00Z"}
]}`

func newClient(t *testing.T, status int, body string) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fotos", r.URL.Path)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return New(srv.Client(), srv.URL)
}

func TestList_KeepsActiveOnly(t *testing.T) {
	c := newClient(t, http.StatusOK, listing)
	images, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Equal(t, "Dunes", images[0].Title)
	assert.Equal(t, "Harbor", images[1].Title)

	require.NotNil(t, images[0].CategoryID)
	assert.Equal(t, int64(2), *images[0].CategoryID)
	assert.Equal(t, "nature", images[0].Category)
	assert.Nil(t, images[1].CategoryID)
}

func TestList_ServerError(t *testing.T) {
	c := newClient(t, http.StatusInternalServerError, `{"success":false,"message":"db down"}`)
	_, err := c.List(context.Background())
	var apiErr *transport.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "db down", apiErr.Message)
}

func TestFind(t *testing.T) {
	c := newClient(t, http.StatusOK, listing)

	img, err := c.Find(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 30.0, img.Price)

	_, err = c.Find(context.Background(), 2)
	assert.ErrorIs(t, err, ErrNotFound)
}
