package compute

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"
)

// VirtualMachinesClientAddons contains addons for VirtualMachinesClient
type VirtualMachinesClientAddons interface {
	DeallocateAndWait(ctx context.Context, resourceGroupName string, vmName string) error
	DeleteAndWait(ctx context.Context, resourceGroupName string, vmName string) error
}

func (c *virtualMachinesClient) DeallocateAndWait(ctx context.Context, resourceGroupName string, vmName string) error {
	future, err := c.Deallocate(ctx, resourceGroupName, vmName)
	if err != nil {
		return err
	}

	return future.WaitForCompletionRef(ctx, c.Client)
}

func (c *virtualMachinesClient) DeleteAndWait(ctx context.Context, resourceGroupName string, vmName string) error {
	future, err := c.Delete(ctx, resourceGroupName, vmName, nil)
	if err != nil {
		return err
	}

	return future.WaitForCompletionRef(ctx, c.Client)
}
