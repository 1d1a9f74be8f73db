package compute

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"

	mgmtcompute "github.com/Azure/azure-sdk-for-go/services/compute/mgmt/2020-06-01/compute"
)

// VirtualMachineScaleSetsClientAddons contains addons for VirtualMachineScaleSetsClient
type VirtualMachineScaleSetsClientAddons interface {
	List(ctx context.Context, resourceGroupName string) ([]mgmtcompute.VirtualMachineScaleSet, error)
	DeleteAndWait(ctx context.Context, resourceGroupName string, VMScaleSetName string) error
}

func (c *virtualMachineScaleSetsClient) List(ctx context.Context, resourceGroupName string) (result []mgmtcompute.VirtualMachineScaleSet, err error) {
	page, err := c.VirtualMachineScaleSetsClient.List(ctx, resourceGroupName)
	if err != nil {
		return nil, err
	}

	for page.NotDone() {
		result = append(result, page.Values()...)

		err = page.NextWithContext(ctx)
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (c *virtualMachineScaleSetsClient) DeleteAndWait(ctx context.Context, resourceGroupName string, VMScaleSetName string) error {
	future, err := c.Delete(ctx, resourceGroupName, VMScaleSetName)
	if err != nil {
		return err
	}

	return future.WaitForCompletionRef(ctx, c.Client)
}
