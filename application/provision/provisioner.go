// Package provision makes sure the containers, queues and tables a service
// depends on exist before it starts, and removes them again on teardown.
package provision

import (
	"context"
	"fmt"
	"strings"

	"github.com/vesla0x1/azstorage/application/ports"
)

// Plan lists resources by name. Blank names are skipped and duplicates
// are handled once.
type Plan struct {
	Containers []string
	Queues     []string
	Tables     []string
}

// IsEmpty reports whether the plan names no resource
func (p Plan) IsEmpty() bool {
	return len(clean(p.Containers)) == 0 && len(clean(p.Queues)) == 0 && len(clean(p.Tables)) == 0
}

// Report lists the resources an Ensure call created or a Teardown call deleted
type Report struct {
	Containers []string
	Queues     []string
	Tables     []string
}

// Total returns the number of resources in the report
func (r Report) Total() int {
	return len(r.Containers) + len(r.Queues) + len(r.Tables)
}

// Provisioner applies a Plan against one storage account
type Provisioner struct {
	factory ports.StorageFactory
	plan    Plan
	logger  ports.Logger
}

// New creates a Provisioner. logger may be nil.
func New(factory ports.StorageFactory, plan Plan, logger ports.Logger) *Provisioner {
	return &Provisioner{
		factory: factory,
		plan: Plan{
			Containers: clean(plan.Containers),
			Queues:     clean(plan.Queues),
			Tables:     clean(plan.Tables),
		},
		logger: logger,
	}
}

// Ensure creates every resource in the plan that does not exist yet.
// It stops at the first failure; the returned report still lists what was
// created up to that point.
func (p *Provisioner) Ensure(ctx context.Context) (Report, error) {
	return p.apply(ctx, "ensure", ports.ResourceHandle.CreateIfNotExists)
}

// Teardown deletes every resource in the plan that exists
func (p *Provisioner) Teardown(ctx context.Context) (Report, error) {
	return p.apply(ctx, "teardown", ports.ResourceHandle.DeleteIfExists)
}

type action func(ports.ResourceHandle, context.Context) (bool, error)

func (p *Provisioner) apply(ctx context.Context, verb string, act action) (Report, error) {
	var report Report

	steps := []struct {
		kind   string
		names  []string
		handle func(string) ports.ResourceHandle
		out    *[]string
	}{
		{"container", p.plan.Containers, func(n string) ports.ResourceHandle { return p.factory.GetBlobContainer(n) }, &report.Containers},
		{"queue", p.plan.Queues, func(n string) ports.ResourceHandle { return p.factory.GetQueue(n) }, &report.Queues},
		{"table", p.plan.Tables, func(n string) ports.ResourceHandle { return p.factory.GetTable(n) }, &report.Tables},
	}

	for _, step := range steps {
		for _, name := range step.names {
			if err := ctx.Err(); err != nil {
				return report, err
			}

			changed, err := act(step.handle(name), ctx)
			if err != nil {
				return report, fmt.Errorf("failed to %s %s %q: %w", verb, step.kind, name, err)
			}
			if changed {
				*step.out = append(*step.out, name)
			}
		}
	}

	if p.logger != nil {
		p.logger.Info("Storage provisioning finished",
			"action", verb,
			"containers", strings.Join(report.Containers, ","),
			"queues", strings.Join(report.Queues, ","),
			"tables", strings.Join(report.Tables, ","),
			"changed", report.Total())
	}
	return report, nil
}

func clean(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}
