package build

import (
	"fmt"

	"github.com/docker/docker/client"
)

// Client wraps the Docker SDK client for image build and push.
type Client struct {
	cli *client.Client
	api BuildAPI // interface for testing
}

// NewClient creates a new Docker client connection.
func NewClient() (*Client, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("create docker client: %w", err)
	}

	return &Client{cli: cli, api: cli}, nil
}

// NewClientWithAPI creates a new client with a custom API implementation.
// This is primarily used for testing with mock implementations.
func NewClientWithAPI(api BuildAPI) *Client {
	return &Client{api: api}
}

// Close closes the Docker client connection.
func (c *Client) Close() error {
	if c.api != nil {
		return c.api.Close()
	}
	return nil
}
