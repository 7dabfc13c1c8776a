// Package catalog reads the image listing offered by the server.
package catalog

import (
	"context"
	"errors"
	"net/http"

	"github.com/atinyakov/FotoShop/internal/client/transport"
	"github.com/atinyakov/FotoShop/internal/models"
)

const pathImages = "/fotos"

// ErrNotFound is returned by Find for an id missing from the listing.
var ErrNotFound = errors.New("image not found")

type Client struct {
	http    *http.Client
	baseURL string
}

func New(httpClient *http.Client, baseURL string) *Client {
	return &Client{http: httpClient, baseURL: baseURL}
}

// List returns the active images in server order.
func (c *Client) List(ctx context.Context) ([]models.Image, error) {
	var env models.Envelope[[]models.Image]
	err := transport.Do(ctx, c.http, transport.Request{
		Method:   http.MethodGet,
		URL:      transport.Endpoint(c.baseURL, pathImages),
		Fallback: "failed to load catalog",
	}, &env)
	if err != nil {
		return nil, err
	}

	active := make([]models.Image, 0, len(env.Data))
	for _, img := range env.Data {
		if img.Active {
			active = append(active, img)
		}
	}
	return active, nil
}

// Find looks id up in the current listing.
func (c *Client) Find(ctx context.Context, id int64) (models.Image, error) {
	images, err := c.List(ctx)
	if err != nil {
		return models.Image{}, err
	}
	for _, img := range images {
		if img.ID == id {
			return img, nil
		}
	}
	return models.Image{}, ErrNotFound
}
