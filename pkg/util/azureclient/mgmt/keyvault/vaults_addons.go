package keyvault

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"
)

// VaultsClientAddons contains addons for VaultsClient
type VaultsClientAddons interface {
	PurgeDeletedAndWait(ctx context.Context, vaultName string, location string) error
}

func (c *vaultsClient) PurgeDeletedAndWait(ctx context.Context, vaultName string, location string) error {
	future, err := c.PurgeDeleted(ctx, vaultName, location)
	if err != nil {
		return err
	}

	return future.WaitForCompletionRef(ctx, c.Client)
}
