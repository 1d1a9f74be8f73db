package steps

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func successfulFunc(context.Context) error { return nil }
func failingFunc(context.Context) error    { return errors.New("oh no!") }

func alwaysTrueCondition(context.Context) (bool, error) { return true, nil }
func timingOutCondition(ctx context.Context) (bool, error) {
	time.Sleep(60 * time.Millisecond)
	return false, nil
}

func TestStepRunner(t *testing.T) {
	for _, tt := range []struct {
		name         string
		steps        []Step
		wantMessages []string
		wantErr      string
	}{
		{
			name: "all successful actions will have a successful run",
			steps: []Step{
				Action(successfulFunc),
				Action(successfulFunc),
			},
			wantMessages: []string{
				"running step [Action github.com/miniad/rscluster/pkg/util/steps.successfulFunc]",
				"running step [Action github.com/miniad/rscluster/pkg/util/steps.successfulFunc]",
			},
		},
		{
			name: "a failing action fails the run",
			steps: []Step{
				Action(successfulFunc),
				Action(failingFunc),
				Action(successfulFunc),
			},
			wantMessages: []string{
				"running step [Action github.com/miniad/rscluster/pkg/util/steps.successfulFunc]",
				"running step [Action github.com/miniad/rscluster/pkg/util/steps.failingFunc]",
				"step [Action github.com/miniad/rscluster/pkg/util/steps.failingFunc] encountered error: oh no!",
			},
			wantErr: "oh no!",
		},
		{
			name: "a timed-out condition fails the run",
			steps: []Step{
				Condition(timingOutCondition, 50*time.Millisecond, true),
			},
			wantMessages: []string{
				"running step [Condition github.com/miniad/rscluster/pkg/util/steps.timingOutCondition, timeout 50ms]",
				"step [Condition github.com/miniad/rscluster/pkg/util/steps.timingOutCondition, timeout 50ms] encountered error: timed out waiting for the condition",
			},
			wantErr: "timed out waiting for the condition",
		},
		{
			name: "a successful condition allows the run to continue",
			steps: []Step{
				Condition(alwaysTrueCondition, 50*time.Millisecond, true),
				Action(successfulFunc),
			},
			wantMessages: []string{
				"running step [Condition github.com/miniad/rscluster/pkg/util/steps.alwaysTrueCondition, timeout 50ms]",
				"running step [Action github.com/miniad/rscluster/pkg/util/steps.successfulFunc]",
			},
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			logger, hook := test.NewNullLogger()
			log := logrus.NewEntry(logger)

			err := Run(context.Background(), log, tt.steps)
			if err != nil && err.Error() != tt.wantErr ||
				err == nil && tt.wantErr != "" {
				t.Error(err)
			}

			entries := hook.AllEntries()
			if len(entries) != len(tt.wantMessages) {
				t.Fatalf("got %d log entries, want %d", len(entries), len(tt.wantMessages))
			}
			for i, want := range tt.wantMessages {
				if entries[i].Message != want {
					t.Errorf("%s != %s", entries[i].Message, want)
				}
			}
		})
	}
}
