// Package azure implements ports.StorageFactory on the Azure SDK for Go.
//
// A Factory is bound to one account.Account. It builds the blob, queue and
// table service clients once, at construction, and then hands out cheap
// handles on demand:
//
//	f, err := azure.NewFromConnectionString("UseDevelopmentStorage=true")
//	if err != nil {
//		return err
//	}
//	jobs := f.GetQueue("jobs")
//	created, err := jobs.CreateIfNotExists(ctx)
//
// Getting a handle does no I/O. Exists, CreateIfNotExists and
// DeleteIfExists call the service every time; nothing is cached.
package azure
