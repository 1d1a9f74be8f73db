package network

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"

	mgmtnetwork "github.com/Azure/azure-sdk-for-go/services/network/mgmt/2020-08-01/network"
)

// ApplicationGatewaysClientAddons contains addons for ApplicationGatewaysClient
type ApplicationGatewaysClientAddons interface {
	BackendHealthAndWait(ctx context.Context, resourceGroupName string, applicationGatewayName string, expand string) (mgmtnetwork.ApplicationGatewayBackendHealth, error)
}

func (c *applicationGatewaysClient) BackendHealthAndWait(ctx context.Context, resourceGroupName string, applicationGatewayName string, expand string) (mgmtnetwork.ApplicationGatewayBackendHealth, error) {
	future, err := c.BackendHealth(ctx, resourceGroupName, applicationGatewayName, expand)
	if err != nil {
		return mgmtnetwork.ApplicationGatewayBackendHealth{}, err
	}

	err = future.WaitForCompletionRef(ctx, c.Client)
	if err != nil {
		return mgmtnetwork.ApplicationGatewayBackendHealth{}, err
	}

	return future.Result(c.ApplicationGatewaysClient)
}
