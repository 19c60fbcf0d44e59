package azure

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"

	"github.com/vesla0x1/azstorage/application/ports"
)

// Table is a handle to a table
type Table struct {
	resource
	service *aztables.ServiceClient
	client  *aztables.Client
}

var _ ports.Table = (*Table)(nil)

// Client returns the SDK client for entity operations, or nil when the
// account has no table endpoint
func (t *Table) Client() *aztables.Client {
	return t.client
}

// Exists reports whether the table is present. The table service has no
// per-table properties call, so this lists tables filtered on the name.
// Table names are case-insensitive.
func (t *Table) Exists(ctx context.Context) (bool, error) {
	if t.client == nil {
		return false, t.notConfigured()
	}

	start := time.Now()
	pager := t.service.NewListTablesPager(&aztables.ListTablesOptions{
		Filter: to.Ptr(fmt.Sprintf("TableName eq '%s'", strings.ReplaceAll(t.name, "'", "''"))),
	})
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return false, t.done("exists", start, "error", err)
		}
		for _, props := range page.Tables {
			if props != nil && props.Name != nil && strings.EqualFold(*props.Name, t.name) {
				return true, t.done("exists", start, "found", nil)
			}
		}
	}
	return false, t.done("exists", start, "not_found", nil)
}

// CreateIfNotExists creates the table and reports whether this call created it
func (t *Table) CreateIfNotExists(ctx context.Context) (bool, error) {
	if t.client == nil {
		return false, t.notConfigured()
	}

	start := time.Now()
	_, err := t.client.CreateTable(ctx, nil)
	switch {
	case err == nil:
		return true, t.done("create", start, "created", nil)
	case hasResponseCode(err, tableAlreadyExists):
		return false, t.done("create", start, "exists", nil)
	default:
		return false, t.done("create", start, "error", err)
	}
}

// DeleteIfExists deletes the table and reports whether it existed
func (t *Table) DeleteIfExists(ctx context.Context) (bool, error) {
	if t.client == nil {
		return false, t.notConfigured()
	}

	start := time.Now()
	_, err := t.client.Delete(ctx, nil)
	switch {
	case err == nil:
		return true, t.done("delete", start, "deleted", nil)
	case hasResponseCode(err, tableNotFound, resourceNotFound):
		return false, t.done("delete", start, "not_found", nil)
	default:
		return false, t.done("delete", start, "error", err)
	}
}
