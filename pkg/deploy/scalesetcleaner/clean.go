package scalesetcleaner

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/miniad/rscluster/pkg/util/azureclient/mgmt/compute"
)

type Interface interface {
	RemoveFailedNewScaleset(ctx context.Context, rgName, vmssToDelete string) (retry bool)
}

type cleaner struct {
	log  *logrus.Entry
	vmss compute.VirtualMachineScaleSetsClient
}

func New(log *logrus.Entry, vmss compute.VirtualMachineScaleSetsClient) Interface {
	return &cleaner{
		log:  log,
		vmss: vmss,
	}
}

// RemoveFailedNewScaleset attempts to delete the new scale set from the
// current deployment if necessary and returns with whether or not deployment
// should be retried
func (c *cleaner) RemoveFailedNewScaleset(ctx context.Context, rgName, vmssToDelete string) (retry bool) {
	scalesets, err := c.vmss.List(ctx, rgName)
	if err != nil {
		c.log.Warn(err)
		return false
	}

	switch len(scalesets) {
	case 0:
		// nothing to delete, retry freely
		return true
	case 1:
		// a lone scale set is the serving one unless it is ours
		return *scalesets[0].Name != vmssToDelete
	}

	for _, vmss := range scalesets {
		if *vmss.Name != vmssToDelete {
			continue
		}

		c.log.Printf("deleting failed or unhealthy scaleset %s", vmssToDelete)
		err = c.vmss.DeleteAndWait(ctx, rgName, vmssToDelete)
		if err != nil {
			c.log.Warn(err)
			return false // vmssToDelete still exists, don't retry
		}
	}
	// vmssToDelete was deleted, or List never returned it: either way a
	// retry will not collide with it
	return true
}
