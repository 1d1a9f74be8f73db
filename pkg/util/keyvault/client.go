package keyvault

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
)

// Client is a minimal interface for the azsecrets dataplane client
type Client interface {
	GetSecret(ctx context.Context, name string, version string, options *azsecrets.GetSecretOptions) (azsecrets.GetSecretResponse, error)
	SetSecret(ctx context.Context, name string, parameters azsecrets.SetSecretParameters, options *azsecrets.SetSecretOptions) (azsecrets.SetSecretResponse, error)
	DeleteSecret(ctx context.Context, name string, options *azsecrets.DeleteSecretOptions) (azsecrets.DeleteSecretResponse, error)
	NewListSecretPropertiesPager(options *azsecrets.ListSecretPropertiesOptions) *runtime.Pager[azsecrets.ListSecretPropertiesResponse]
}

type client struct {
	*azsecrets.Client
}

var _ Client = &client{}

// NewClient creates a new azsecrets dataplane client
func NewClient(vaultURL string, credential azcore.TokenCredential, options *azcore.ClientOptions) (Client, error) {
	var clientOptions azsecrets.ClientOptions
	if options != nil {
		clientOptions.ClientOptions = *options
	}

	_client, err := azsecrets.NewClient(vaultURL, credential, &clientOptions)
	if err != nil {
		return nil, err
	}

	return &client{
		Client: _client,
	}, nil
}
