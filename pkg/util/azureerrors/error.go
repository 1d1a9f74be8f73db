package azureerrors

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/go-autorest/autorest"
	"github.com/Azure/go-autorest/autorest/azure"
)

const (
	CODE_AUTHFAILED       = "AuthorizationFailed"
	CODE_DEPLOYACTIVE     = "DeploymentActive"
	CODE_DEPLOYFAILED     = "DeploymentFailed"
	CODE_LINKEDAUTHFAILED = "LinkedAuthorizationFailed"
	CODE_RGNOTFOUND       = "ResourceGroupNotFound"
)

// HasAuthorizationFailedError returns true if the error is, or contains, an
// AuthorizationFailed error
func HasAuthorizationFailedError(err error) bool {
	return hasServiceErrorCode(err, CODE_AUTHFAILED)
}

// HasLinkedAuthorizationFailedError returns true if the error is, or contains,
// a LinkedAuthorizationFailed error
func HasLinkedAuthorizationFailedError(err error) bool {
	return hasServiceErrorCode(err, CODE_LINKEDAUTHFAILED)
}

// IsDeploymentActiveError returns true if the error is a DeploymentActive
// error: a previous deployment with the same name is still in progress
func IsDeploymentActiveError(err error) bool {
	return hasServiceErrorCode(err, CODE_DEPLOYACTIVE)
}

// IsResourceGroupNotFoundError returns true if the error is a
// ResourceGroupNotFound error
func IsResourceGroupNotFoundError(err error) bool {
	return hasServiceErrorCode(err, CODE_RGNOTFOUND)
}

func hasServiceErrorCode(err error, code string) bool {
	if detailedErr, ok := err.(autorest.DetailedError); ok {
		if serviceErr, ok := detailedErr.Original.(*azure.ServiceError); ok &&
			serviceErr.Code == code {
			return true
		}
		if requestErr, ok := detailedErr.Original.(*azure.RequestError); ok &&
			requestErr.ServiceError != nil &&
			requestErr.ServiceError.Code == code {
			return true
		}
	}

	if serviceErr, ok := err.(*azure.ServiceError); ok {
		if serviceErr.Code == code {
			return true
		}
		if serviceErr.Code == CODE_DEPLOYFAILED {
			for _, d := range serviceErr.Details {
				if c, ok := d["code"].(string); ok && c == code {
					return true
				}
			}
		}
	}

	var responseError *azcore.ResponseError
	if errors.As(err, &responseError) {
		return responseError.ErrorCode == code
	}

	return false
}

// IsNotFoundError returns true if the error is an HTTP 404 from either SDK
func IsNotFoundError(err error) bool {
	if detailedErr, ok := err.(autorest.DetailedError); ok {
		return detailedErr.StatusCode == http.StatusNotFound
	}

	var responseError *azcore.ResponseError
	if errors.As(err, &responseError) {
		return responseError.StatusCode == http.StatusNotFound
	}

	return false
}

// IsUnauthorizedClientError returns true if the error is an unauthorized
// client error (AADSTS700016), e.g. AAD has not yet propagated a newly
// created service principal
func IsUnauthorizedClientError(err error) bool {
	return isTokenError(err, "unauthorized_client")
}

// IsInvalidSecretError returns true if the error is an invalid client secret
// error (AADSTS7000215), seen while freshly rotated credentials propagate
func IsInvalidSecretError(err error) bool {
	return isTokenError(err, "invalid_client")
}

func isTokenError(err error, code string) bool {
	if !autorest.IsTokenRefreshError(err) {
		return false
	}

	return strings.Contains(err.Error(), code)
}
