package steps

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"k8s.io/apimachinery/pkg/util/wait"
)

// conditionFunction is a function that takes a context and returns whether the
// condition has been met and an error.
//
// Suitable for polling external sources for readiness.
type conditionFunction func(context.Context) (bool, error)

// Condition returns a Step which will execute the condition function `f`
// repeatedly until it returns true or the timeout elapses.  Errors from `f`
// do not abort polling unless `fail` is set.
func Condition(f conditionFunction, timeout time.Duration, fail bool) Step {
	return conditionStep{
		f:            f,
		fail:         fail,
		pollInterval: 10 * time.Second,
		timeout:      timeout,
	}
}

type conditionStep struct {
	f            conditionFunction
	fail         bool
	pollInterval time.Duration
	timeout      time.Duration
}

func (s conditionStep) run(ctx context.Context, log *logrus.Entry) error {
	timeoutCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var pollErr error
	err := wait.PollImmediateUntil(s.pollInterval, func() (bool, error) {
		// We use the outer context, not the timeout context, as we do not want
		// to time out the condition function itself, only stop retrying once
		// timeoutCtx's timeout has fired.
		var done bool
		done, pollErr = s.f(ctx)
		if pollErr != nil && s.fail {
			return false, pollErr
		}
		return done, nil
	}, timeoutCtx.Done())

	if err != nil && pollErr != nil {
		err = fmt.Errorf("%s: %s", err, pollErr)
	}
	return err
}

func (s conditionStep) String() string {
	return fmt.Sprintf("[Condition %s, timeout %s]", FriendlyName(s.f), s.timeout)
}
