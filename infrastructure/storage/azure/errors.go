package azure

import (
	"errors"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
)

var (
	// ErrNilAccount is returned by New when no account is given
	ErrNilAccount = errors.New("storage account is required")

	// ErrEndpointNotConfigured is returned by handle operations when the
	// account has no endpoint for the handle's service
	ErrEndpointNotConfigured = errors.New("endpoint not configured")
)

// Table service error codes. The aztables package does not export these;
// Azure returns ResourceNotFound for a missing table where Azurite returns
// TableNotFound.
const (
	tableAlreadyExists = "TableAlreadyExists"
	tableNotFound      = "TableNotFound"
	resourceNotFound   = "ResourceNotFound"
)

func hasResponseCode(err error, codes ...string) bool {
	var respErr *azcore.ResponseError
	if !errors.As(err, &respErr) {
		return false
	}
	for _, code := range codes {
		if respErr.ErrorCode == code {
			return true
		}
	}
	return false
}
