package infrastorage

import (
	"context"

	"github.com/vesla0x1/azstorage/application/ports"
	"github.com/vesla0x1/azstorage/application/provision"
	"github.com/vesla0x1/azstorage/infrastructure/config"
)

// NewProvisioner returns a provisioner for the STORAGE_CONTAINERS,
// STORAGE_QUEUES and STORAGE_TABLES lists in cfg
func NewProvisioner(cfg *config.Config, factory ports.StorageFactory, logger ports.Logger) *provision.Provisioner {
	return provision.New(factory, provision.Plan{
		Containers: cfg.Storage.Provision.Containers,
		Queues:     cfg.Storage.Provision.Queues,
		Tables:     cfg.Storage.Provision.Tables,
	}, logger)
}

// EnsureProvisioned creates the configured resources. It is a no-op when
// nothing is configured.
func EnsureProvisioned(ctx context.Context, cfg *config.Config, factory ports.StorageFactory, logger ports.Logger) (provision.Report, error) {
	if !cfg.HasProvisioning() {
		return provision.Report{}, nil
	}
	return NewProvisioner(cfg, factory, logger).Ensure(ctx)
}
