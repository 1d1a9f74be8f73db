package steps

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"k8s.io/apimachinery/pkg/util/wait"

	"github.com/miniad/rscluster/pkg/util/azureerrors"
	"github.com/miniad/rscluster/pkg/util/refreshable"
)

var ErrWantRefresh = errors.New("want refresh")

// AuthorizationRetryingAction returns a wrapper Step which will refresh
// `authorizer` if the step returns an Azure authorization error and rerun it.
// The step will be retried until `retryTimeout` is hit. Any other error will
// be returned directly.
func AuthorizationRetryingAction(r refreshable.Authorizer, action actionFunction) Step {
	return &authorizationRefreshingActionStep{
		auth: r,
		f:    action,
	}
}

type authorizationRefreshingActionStep struct {
	f            actionFunction
	auth         refreshable.Authorizer
	retryTimeout time.Duration
	pollInterval time.Duration
}

func (s *authorizationRefreshingActionStep) run(ctx context.Context, log *logrus.Entry) error {
	retryTimeout := s.retryTimeout
	pollInterval := s.pollInterval

	// ARM role caching can be 5 minutes
	if retryTimeout == time.Duration(0) {
		retryTimeout = 10 * time.Minute
	}
	if pollInterval == time.Duration(0) {
		pollInterval = 30 * time.Second
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, retryTimeout)
	defer cancel()

	// Run the step immediately. If an Azure authorization error is returned
	// and we have not hit the retry timeout, the authorizer is refreshed and
	// the step is called again after pollInterval. If we have timed out or any
	// other error is returned, the error from the step is returned directly.
	return wait.PollImmediateUntil(pollInterval, func() (bool, error) {
		// We use the outer context, not the timeout context, as we do not want
		// to time out the condition function itself, only stop retrying once
		// timeoutCtx's timeout has fired.
		err := s.f(ctx)

		if timeoutCtx.Err() == nil && err != nil &&
			(azureerrors.IsUnauthorizedClientError(err) ||
				azureerrors.HasAuthorizationFailedError(err) ||
				azureerrors.HasLinkedAuthorizationFailedError(err) ||
				azureerrors.IsInvalidSecretError(err) ||
				err == ErrWantRefresh) {
			log.Printf("auth error, refreshing and retrying: %v", err)
			// Try refreshing auth.
			_, err = s.auth.RefreshWithContext(ctx, log)
			return false, err // retry step
		}
		return true, err
	}, timeoutCtx.Done())
}

func (s *authorizationRefreshingActionStep) String() string {
	return fmt.Sprintf("[AuthorizationRetryingAction %s]", FriendlyName(s.f))
}
