package keyvault

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
)

type fakeTokenCredential struct{}

func (fakeTokenCredential) GetToken(ctx context.Context, options policy.TokenRequestOptions) (azcore.AccessToken, error) {
	return azcore.AccessToken{}, nil
}

func TestNewClient(t *testing.T) {
	for _, tt := range []struct {
		name    string
		options *azcore.ClientOptions
	}{
		{
			name: "nil options",
		},
		{
			name:    "zero options",
			options: &azcore.ClientOptions{},
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClient("https://service-kv.vault.azure.net/", fakeTokenCredential{}, tt.options)
			if err != nil {
				t.Fatal(err)
			}
			if c == nil {
				t.Error("expected a client")
			}
		})
	}
}
