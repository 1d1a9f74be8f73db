package refreshable

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"

	"github.com/Azure/go-autorest/autorest"
	"github.com/Azure/go-autorest/autorest/adal"
	"github.com/sirupsen/logrus"

	"github.com/miniad/rscluster/pkg/util/azureerrors"
)

type Authorizer interface {
	autorest.Authorizer
	RefreshWithContext(context.Context, *logrus.Entry) (bool, error)
	LastError() error
}

type authorizer struct {
	autorest.Authorizer
	sp        *adal.ServicePrincipalToken
	lastError error
}

// RefreshWithContext attempts to refresh a service principal token.  It should
// be called from within a wait.Poll* loop and its return values match
// accordingly.  A retry is requested when AAD has likely not yet propagated
// the principal or its credentials (unauthorized_client / invalid_client), and
// on transient network failures which do not surface as token refresh errors.
func (a *authorizer) RefreshWithContext(ctx context.Context, log *logrus.Entry) (bool, error) {
	a.lastError = a.sp.RefreshWithContext(ctx)
	if a.lastError == nil {
		return true, nil
	}

	log.Info(a.lastError)

	if !autorest.IsTokenRefreshError(a.lastError) ||
		azureerrors.IsUnauthorizedClientError(a.lastError) ||
		azureerrors.IsInvalidSecretError(a.lastError) {
		return false, nil
	}
	return false, a.lastError
}

func (a *authorizer) LastError() error {
	return a.lastError
}

func NewAuthorizer(sp *adal.ServicePrincipalToken) Authorizer {
	return &authorizer{
		Authorizer: autorest.NewBearerAuthorizer(sp),
		sp:         sp,
	}
}
