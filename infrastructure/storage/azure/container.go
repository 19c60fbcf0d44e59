package azure

import (
	"context"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"

	"github.com/vesla0x1/azstorage/application/ports"
)

// Container is a handle to a blob container
type Container struct {
	resource
	client *container.Client
}

var _ ports.BlobContainer = (*Container)(nil)

// Client returns the SDK client for blob-level work, or nil when the
// account has no blob endpoint
func (c *Container) Client() *container.Client {
	return c.client
}

// Exists reports whether the container is present
func (c *Container) Exists(ctx context.Context) (bool, error) {
	if c.client == nil {
		return false, c.notConfigured()
	}

	start := time.Now()
	_, err := c.client.GetProperties(ctx, nil)
	switch {
	case err == nil:
		return true, c.done("exists", start, "found", nil)
	case bloberror.HasCode(err, bloberror.ContainerNotFound):
		return false, c.done("exists", start, "not_found", nil)
	default:
		return false, c.done("exists", start, "error", err)
	}
}

// CreateIfNotExists creates the container and reports whether this call created it
func (c *Container) CreateIfNotExists(ctx context.Context) (bool, error) {
	if c.client == nil {
		return false, c.notConfigured()
	}

	start := time.Now()
	_, err := c.client.Create(ctx, nil)
	switch {
	case err == nil:
		return true, c.done("create", start, "created", nil)
	case bloberror.HasCode(err, bloberror.ContainerAlreadyExists):
		return false, c.done("create", start, "exists", nil)
	default:
		return false, c.done("create", start, "error", err)
	}
}

// DeleteIfExists deletes the container and reports whether it existed
func (c *Container) DeleteIfExists(ctx context.Context) (bool, error) {
	if c.client == nil {
		return false, c.notConfigured()
	}

	start := time.Now()
	_, err := c.client.Delete(ctx, nil)
	switch {
	case err == nil:
		return true, c.done("delete", start, "deleted", nil)
	case bloberror.HasCode(err, bloberror.ContainerNotFound):
		return false, c.done("delete", start, "not_found", nil)
	default:
		return false, c.done("delete", start, "error", err)
	}
}
