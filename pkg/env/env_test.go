package env

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"testing"

	"github.com/spf13/viper"
)

func TestValidateVars(t *testing.T) {
	for _, tt := range []struct {
		name    string
		envs    map[string]string
		vars    []string
		wantErr string
	}{
		{
			name: "all present",
			envs: map[string]string{
				"AZURE_TENANT_ID": "tenant",
				"AZURE_CLIENT_ID": "client",
			},
			vars: []string{"AZURE_TENANT_ID", "AZURE_CLIENT_ID"},
		},
		{
			name: "one missing",
			envs: map[string]string{
				"AZURE_TENANT_ID": "tenant",
			},
			vars:    []string{"AZURE_TENANT_ID", "AZURE_CLIENT_SECRET"},
			wantErr: "environment variable(s) AZURE_CLIENT_SECRET unset",
		},
		{
			name:    "all missing",
			vars:    []string{"AZURE_TENANT_ID", "AZURE_CLIENT_ID"},
			wantErr: "environment variable(s) AZURE_TENANT_ID, AZURE_CLIENT_ID unset",
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			cfg := viper.New()
			for k, v := range tt.envs {
				cfg.Set(k, v)
			}

			err := ValidateVars(cfg, tt.vars...)
			if err != nil && err.Error() != tt.wantErr ||
				err == nil && tt.wantErr != "" {
				t.Error(err)
			}
		})
	}
}

func TestIsLocalDevelopmentMode(t *testing.T) {
	cfg := viper.New()
	if IsLocalDevelopmentMode(cfg) {
		t.Error("unexpected development mode")
	}

	cfg.Set("RSCLUSTER_MODE", "Development")
	if !IsLocalDevelopmentMode(cfg) {
		t.Error("expected development mode")
	}
}
