package azureclient

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/cloud"
	"github.com/Azure/go-autorest/autorest/azure"
)

// Environment contains additional, cloud-specific information needed by the
// provisioner on top of the stock go-autorest environment.
type Environment struct {
	azure.Environment
	Cloud cloud.Configuration

	// Microsoft identity platform scopes
	// See https://learn.microsoft.com/EN-US/azure/active-directory/develop/scopes-oidc#the-default-scope
	ResourceManagerScope string
	KeyVaultScope        string
}

var (
	// PublicCloud contains the settings for the public Azure cloud environment
	PublicCloud = Environment{
		Environment:          azure.PublicCloud,
		Cloud:                cloud.AzurePublic,
		ResourceManagerScope: azure.PublicCloud.ResourceManagerEndpoint + "/.default",
		KeyVaultScope:        azure.PublicCloud.ResourceIdentifiers.KeyVault + "/.default",
	}

	// USGovernmentCloud contains the settings for the US Gov cloud environment
	USGovernmentCloud = Environment{
		Environment:          azure.USGovernmentCloud,
		Cloud:                cloud.AzureGovernment,
		ResourceManagerScope: azure.USGovernmentCloud.ResourceManagerEndpoint + "/.default",
		KeyVaultScope:        azure.USGovernmentCloud.ResourceIdentifiers.KeyVault + "/.default",
	}
)

// EnvironmentFromName returns the Environment corresponding to the common
// name of an Azure cloud (e.g. "AzurePublicCloud")
func EnvironmentFromName(name string) (*Environment, error) {
	switch name {
	case "", azure.PublicCloud.Name:
		return &PublicCloud, nil
	case azure.USGovernmentCloud.Name:
		return &USGovernmentCloud, nil
	}

	return nil, fmt.Errorf("cloud environment %q is unsupported by this tool", name)
}
