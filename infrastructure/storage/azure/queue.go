package azure

import (
	"context"
	"net/http"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azqueue"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azqueue/queueerror"

	"github.com/vesla0x1/azstorage/application/ports"
)

// Queue is a handle to a storage queue
type Queue struct {
	resource
	client *azqueue.QueueClient
}

var _ ports.Queue = (*Queue)(nil)

// Client returns the SDK client for message operations, or nil when the
// account has no queue endpoint
func (q *Queue) Client() *azqueue.QueueClient {
	return q.client
}

// Exists reports whether the queue is present
func (q *Queue) Exists(ctx context.Context) (bool, error) {
	if q.client == nil {
		return false, q.notConfigured()
	}

	start := time.Now()
	_, err := q.client.GetProperties(ctx, nil)
	switch {
	case err == nil:
		return true, q.done("exists", start, "found", nil)
	case queueerror.HasCode(err, queueerror.QueueNotFound):
		return false, q.done("exists", start, "not_found", nil)
	default:
		return false, q.done("exists", start, "error", err)
	}
}

// CreateIfNotExists creates the queue and reports whether this call created
// it. The service answers 204 rather than 201 when an identical queue is
// already there.
func (q *Queue) CreateIfNotExists(ctx context.Context) (bool, error) {
	if q.client == nil {
		return false, q.notConfigured()
	}

	var raw *http.Response
	start := time.Now()
	_, err := q.client.Create(runtime.WithCaptureResponse(ctx, &raw), nil)
	switch {
	case err == nil && raw != nil && raw.StatusCode == http.StatusNoContent:
		return false, q.done("create", start, "exists", nil)
	case err == nil:
		return true, q.done("create", start, "created", nil)
	case queueerror.HasCode(err, queueerror.QueueAlreadyExists):
		return false, q.done("create", start, "exists", nil)
	default:
		return false, q.done("create", start, "error", err)
	}
}

// DeleteIfExists deletes the queue and reports whether it existed
func (q *Queue) DeleteIfExists(ctx context.Context) (bool, error) {
	if q.client == nil {
		return false, q.notConfigured()
	}

	start := time.Now()
	_, err := q.client.Delete(ctx, nil)
	switch {
	case err == nil:
		return true, q.done("delete", start, "deleted", nil)
	case queueerror.HasCode(err, queueerror.QueueNotFound):
		return false, q.done("delete", start, "not_found", nil)
	default:
		return false, q.done("delete", start, "error", err)
	}
}
