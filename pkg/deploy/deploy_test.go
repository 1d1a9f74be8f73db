package deploy

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"
	"errors"
	"testing"

	"github.com/Azure/go-autorest/autorest/azure"
	"github.com/Azure/go-autorest/autorest/to"
	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"

	"github.com/miniad/rscluster/pkg/util/arm"
)

func TestDeployTemplate(t *testing.T) {
	ctx := context.Background()

	deployFailed := errors.New("deployment failed")

	for _, tt := range []struct {
		name      string
		createErr error
		waitErr   error
		wantWait  bool
		wantErr   error
	}{
		{
			name: "success",
		},
		{
			name:      "deployment error is returned",
			createErr: deployFailed,
			wantErr:   deployFailed,
		},
		{
			name:      "active deployment is waited for",
			createErr: &azure.ServiceError{Code: "DeploymentActive"},
			wantWait:  true,
		},
		{
			name:      "waited-for deployment fails",
			createErr: &azure.ServiceError{Code: "DeploymentActive"},
			waitErr:   deployFailed,
			wantWait:  true,
			wantErr:   deployFailed,
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			deployments := &fakeDeploymentsClient{
				createErr: tt.createErr,
				waitErr:   tt.waitErr,
			}

			p := &provisioner{
				log:         logrus.NewEntry(logrus.StandardLogger()),
				deployments: deployments,
			}

			err := p.deployTemplate(ctx, "test-rg", "test-deployment", &arm.Template{}, &arm.Parameters{})
			if err != tt.wantErr {
				t.Error(err)
			}
			if deployments.waitCalled != tt.wantWait {
				t.Error(deployments.waitCalled)
			}
		})
	}
}

func TestGetParameters(t *testing.T) {
	adminUsername := "rsadmin"
	keyvaultName := to.StringPtr("prod-kv")
	deployServicePrincipalID := to.StringPtr("11111111-1111-1111-1111-111111111111")

	for _, tt := range []struct {
		name   string
		ps     map[string]*arm.TemplateParameter
		config Configuration
		want   arm.Parameters
	}{
		{
			name: "no parameters",
			want: arm.Parameters{
				Parameters: map[string]*arm.ParametersParameter{},
			},
		},
		{
			name: "all parameters set",
			ps: map[string]*arm.TemplateParameter{
				"adminUsername": {},
				"keyvaultName":  {},
			},
			config: Configuration{
				AdminUsername: adminUsername,
				KeyvaultName:  keyvaultName,
			},
			want: arm.Parameters{
				Parameters: map[string]*arm.ParametersParameter{
					"adminUsername": {
						Value: adminUsername,
					},
					"keyvaultName": {
						Value: *keyvaultName,
					},
				},
			},
		},
		{
			name: "unset fields are skipped",
			ps: map[string]*arm.TemplateParameter{
				"adminUsername":            {},
				"keyvaultName":             {},
				"deployServicePrincipalId": {},
			},
			config: Configuration{
				DeployServicePrincipalID: deployServicePrincipalID,
			},
			want: arm.Parameters{
				Parameters: map[string]*arm.ParametersParameter{
					"deployServicePrincipalId": {
						Value: *deployServicePrincipalID,
					},
				},
			},
		},
		{
			name: "fields not named by the template are skipped",
			ps: map[string]*arm.TemplateParameter{
				"adminUsername": {},
			},
			config: Configuration{
				AdminUsername: adminUsername,
				KeyvaultName:  keyvaultName,
			},
			want: arm.Parameters{
				Parameters: map[string]*arm.ParametersParameter{
					"adminUsername": {
						Value: adminUsername,
					},
				},
			},
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			p := &provisioner{
				config: &EnvironmentConfig{
					Configuration: &tt.config,
				},
			}

			got := p.getParameters(tt.ps)

			if diff := cmp.Diff(&tt.want, got); diff != "" {
				t.Error(diff)
			}
		})
	}
}
