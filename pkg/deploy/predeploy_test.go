package deploy

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"
	"errors"
	"testing"

	"github.com/miniad/rscluster/pkg/util/keyvault"
)

type fakeSecretsManager struct {
	keyvault.Manager

	getErr error
}

func (m *fakeSecretsManager) GetSecret(ctx context.Context, secretName string) (string, error) {
	if m.getErr != nil {
		return "", m.getErr
	}
	return "value", nil
}

func TestServiceKeyvaultAccessible(t *testing.T) {
	ctx := context.Background()

	for _, tt := range []struct {
		name    string
		getErr  error
		want    bool
		wantErr bool
	}{
		{
			name: "secret exists",
			want: true,
		},
		{
			name:   "vault reachable, secret absent",
			getErr: notFound,
			want:   true,
		},
		{
			name:    "vault not reachable",
			getErr:  errors.New("no such host"),
			wantErr: true,
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			p := &provisioner{
				serviceKeyvault: &fakeSecretsManager{getErr: tt.getErr},
			}

			got, err := p.serviceKeyvaultAccessible(ctx)
			if (err != nil) != tt.wantErr {
				t.Error(err)
			}
			if got != tt.want {
				t.Error(got)
			}
		})
	}
}
