package azureerrors

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"errors"
	"net/http"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/go-autorest/autorest"
	"github.com/Azure/go-autorest/autorest/azure"
)

func TestHasAuthorizationFailedError(t *testing.T) {
	for _, tt := range []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "autorest detailed error",
			err: autorest.DetailedError{
				Original: &azure.ServiceError{
					Code: "AuthorizationFailed",
				},
			},
			want: true,
		},
		{
			name: "autorest request error",
			err: autorest.DetailedError{
				Original: &azure.RequestError{
					ServiceError: &azure.ServiceError{
						Code: "AuthorizationFailed",
					},
				},
			},
			want: true,
		},
		{
			name: "nested under DeploymentFailed",
			err: &azure.ServiceError{
				Code: "DeploymentFailed",
				Details: []map[string]interface{}{
					{"code": "AuthorizationFailed"},
				},
			},
			want: true,
		},
		{
			name: "azcore response error",
			err: &azcore.ResponseError{
				ErrorCode: "AuthorizationFailed",
			},
			want: true,
		},
		{
			name: "other error",
			err:  errors.New("random error"),
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			got := HasAuthorizationFailedError(tt.err)
			if got != tt.want {
				t.Errorf("%v != %v", got, tt.want)
			}
		})
	}
}

func TestIsResourceGroupNotFoundError(t *testing.T) {
	err := autorest.DetailedError{
		Original: &azure.ServiceError{
			Code: "ResourceGroupNotFound",
		},
	}
	if !IsResourceGroupNotFoundError(err) {
		t.Error("expected ResourceGroupNotFound to be detected")
	}

	if IsResourceGroupNotFoundError(errors.New("nope")) {
		t.Error("unexpected match")
	}
}

func TestIsNotFoundError(t *testing.T) {
	if !IsNotFoundError(&azcore.ResponseError{StatusCode: http.StatusNotFound}) {
		t.Error("expected 404 to be detected")
	}

	if IsNotFoundError(&azcore.ResponseError{StatusCode: http.StatusConflict}) {
		t.Error("unexpected match")
	}
}
