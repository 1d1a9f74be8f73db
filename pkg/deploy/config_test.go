package deploy

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"strings"
	"testing"

	"github.com/Azure/go-autorest/autorest/to"
	"github.com/google/go-cmp/cmp"
)

func TestMergeConfig(t *testing.T) {
	for _, tt := range []struct {
		name      string
		primary   *Configuration
		secondary *Configuration
		want      *Configuration
	}{
		{
			name:    "empty primary takes everything from secondary",
			primary: &Configuration{},
			secondary: &Configuration{
				AdminUsername: "rsadmin",
				KeyvaultName:  to.StringPtr("global-kv"),
			},
			want: &Configuration{
				AdminUsername: "rsadmin",
				KeyvaultName:  to.StringPtr("global-kv"),
			},
		},
		{
			name: "primary wins where set",
			primary: &Configuration{
				KeyvaultName: to.StringPtr("env-kv"),
			},
			secondary: &Configuration{
				AdminUsername: "rsadmin",
				KeyvaultName:  to.StringPtr("global-kv"),
			},
			want: &Configuration{
				AdminUsername: "rsadmin",
				KeyvaultName:  to.StringPtr("env-kv"),
			},
		},
		{
			name: "fields missing from secondary survive",
			primary: &Configuration{
				StorageAccountName: to.StringPtr("envstorage"),
			},
			secondary: &Configuration{},
			want: &Configuration{
				StorageAccountName: to.StringPtr("envstorage"),
			},
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			got, err := mergeConfig(tt.primary, tt.secondary)
			if err != nil {
				t.Fatal(err)
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Error(diff)
			}
		})
	}
}

func TestMergeConfigNil(t *testing.T) {
	_, err := mergeConfig(nil, &Configuration{})
	if err == nil {
		t.Error("expected error")
	}
}

func TestConfigValidate(t *testing.T) {
	valid := func() *EnvironmentConfig {
		return &EnvironmentConfig{
			Name:              "prod",
			SubscriptionID:    "00000000-0000-0000-0000-000000000000",
			ResourceGroupName: "prod-rscluster",
			Configuration: &Configuration{
				KeyvaultName:             to.StringPtr("prod-kv"),
				StorageAccountName:       to.StringPtr("prodstorage"),
				DeployServicePrincipalID: to.StringPtr("11111111-1111-1111-1111-111111111111"),
			},
		}
	}

	for _, tt := range []struct {
		name    string
		modify  func(*EnvironmentConfig)
		wantErr string
	}{
		{
			name:   "valid",
			modify: func(*EnvironmentConfig) {},
		},
		{
			name: "missing subscriptionId",
			modify: func(c *EnvironmentConfig) {
				c.SubscriptionID = ""
			},
			wantErr: "subscriptionId is required",
		},
		{
			name: "missing resourceGroupName",
			modify: func(c *EnvironmentConfig) {
				c.ResourceGroupName = ""
			},
			wantErr: "resourceGroupName is required",
		},
		{
			name: "missing configuration fields",
			modify: func(c *EnvironmentConfig) {
				c.Configuration.KeyvaultName = nil
				c.Configuration.DeployServicePrincipalID = to.StringPtr("")
			},
			wantErr: "configuration has missing fields: [keyvaultName deployServicePrincipalId]",
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			config := valid()
			tt.modify(config)

			err := config.validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatal(err)
				}
				if config.Configuration.AdminUsername != "rsadmin" {
					t.Error(config.Configuration.AdminUsername)
				}
				return
			}

			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Error(err)
			}
		})
	}
}
