package keyvault

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"

	mgmtkeyvault "github.com/Azure/azure-sdk-for-go/services/keyvault/mgmt/2019-09-01/keyvault"
	"github.com/Azure/go-autorest/autorest"

	"github.com/miniad/rscluster/pkg/util/azureclient"
)

// VaultsClient is a minimal interface for azure VaultsClient
type VaultsClient interface {
	Get(ctx context.Context, resourceGroupName string, vaultName string) (result mgmtkeyvault.Vault, err error)
	VaultsClientAddons
}

type vaultsClient struct {
	mgmtkeyvault.VaultsClient
}

var _ VaultsClient = &vaultsClient{}

// NewVaultsClient creates a new VaultsClient
func NewVaultsClient(environment *azureclient.Environment, subscriptionID string, authorizer autorest.Authorizer) VaultsClient {
	client := mgmtkeyvault.NewVaultsClientWithBaseURI(environment.ResourceManagerEndpoint, subscriptionID)
	client.Authorizer = authorizer
	client.Sender = azureclient.DecorateSenderWithLogging(client.Sender)

	return &vaultsClient{
		VaultsClient: client,
	}
}
