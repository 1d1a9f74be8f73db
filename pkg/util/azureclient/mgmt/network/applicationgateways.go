package network

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"

	mgmtnetwork "github.com/Azure/azure-sdk-for-go/services/network/mgmt/2020-08-01/network"
	"github.com/Azure/go-autorest/autorest"

	"github.com/miniad/rscluster/pkg/util/azureclient"
)

// ApplicationGatewaysClient is a minimal interface for azure ApplicationGatewaysClient
type ApplicationGatewaysClient interface {
	Get(ctx context.Context, resourceGroupName string, applicationGatewayName string) (result mgmtnetwork.ApplicationGateway, err error)
	ApplicationGatewaysClientAddons
}

type applicationGatewaysClient struct {
	mgmtnetwork.ApplicationGatewaysClient
}

var _ ApplicationGatewaysClient = &applicationGatewaysClient{}

// NewApplicationGatewaysClient creates a new ApplicationGatewaysClient
func NewApplicationGatewaysClient(environment *azureclient.Environment, subscriptionID string, authorizer autorest.Authorizer) ApplicationGatewaysClient {
	client := mgmtnetwork.NewApplicationGatewaysClientWithBaseURI(environment.ResourceManagerEndpoint, subscriptionID)
	client.Authorizer = authorizer
	client.Sender = azureclient.DecorateSenderWithLogging(client.Sender)

	return &applicationGatewaysClient{
		ApplicationGatewaysClient: client,
	}
}
