package ports

import (
	"context"
)

// ResourceHandle is a named reference to a resource inside a storage account.
// Holding a handle says nothing about whether the resource exists; every
// method that talks to the service asks it again.
type ResourceHandle interface {
	// Name returns the resource name the handle was created for
	Name() string

	// AccountName returns the storage account the resource lives in
	AccountName() string

	// URL returns the full resource URL, or "" if the account has no endpoint for this service
	URL() string

	// Exists queries the service for the resource
	Exists(ctx context.Context) (bool, error)

	// CreateIfNotExists creates the resource and reports whether it was created by this call
	CreateIfNotExists(ctx context.Context) (bool, error)

	// DeleteIfExists deletes the resource and reports whether it existed
	DeleteIfExists(ctx context.Context) (bool, error)
}

// BlobContainer is a handle to a blob container
type BlobContainer interface {
	ResourceHandle
}

// Queue is a handle to a storage queue
type Queue interface {
	ResourceHandle
}

// Table is a handle to a table
type Table interface {
	ResourceHandle
}

// StorageFactory hands out resource handles for a single storage account.
// Accessors do no I/O and never fail; each call returns a new handle.
type StorageFactory interface {
	// GetBlobContainer returns a handle to the named container
	GetBlobContainer(name string) BlobContainer

	// GetQueue returns a handle to the named queue
	GetQueue(name string) Queue

	// GetTable returns a handle to the named table
	GetTable(name string) Table
}
