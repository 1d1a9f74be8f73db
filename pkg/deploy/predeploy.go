package deploy

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"
	"time"

	mgmtfeatures "github.com/Azure/azure-sdk-for-go/services/resources/mgmt/2019-07-01/features"

	"github.com/miniad/rscluster/pkg/deploy/generator"
	"github.com/miniad/rscluster/pkg/env"
	"github.com/miniad/rscluster/pkg/util/arm"
	"github.com/miniad/rscluster/pkg/util/azureerrors"
	"github.com/miniad/rscluster/pkg/util/steps"
)

// PreDeploy creates the cluster resource group, the virtual network with its
// security groups, and the service key vault, then generates the three AD
// passwords if they do not exist yet.  Everything later builds on this.
func (p *provisioner) PreDeploy(ctx context.Context) error {
	return steps.Run(ctx, p.log, []steps.Step{
		steps.Action(p.deployResourceGroup),
		steps.Action(p.deployPreDeploy),
		// the vault's DNS record propagates asynchronously after the
		// deployment reports success
		steps.Condition(p.serviceKeyvaultAccessible, 10*time.Minute, false),
		// key vault access policies ride AAD replication
		steps.AuthorizationRetryingAction(p.fpAuthorizer, p.configureServiceSecrets),
	})
}

// serviceKeyvaultAccessible returns true once the dataplane answers.  A
// NotFound counts: it means the request reached the vault and got through the
// access policy.
func (p *provisioner) serviceKeyvaultAccessible(ctx context.Context) (bool, error) {
	_, err := p.serviceKeyvault.GetSecret(ctx, env.DomainAdminSecretName)
	if err != nil && !azureerrors.IsNotFoundError(err) {
		return false, err
	}

	return true, nil
}

func (p *provisioner) deployResourceGroup(ctx context.Context) error {
	p.log.Infof("deploying rg %s in %s", p.config.ResourceGroupName, p.manifest.Cluster.Location)
	_, err := p.groups.CreateOrUpdate(ctx, p.config.ResourceGroupName, mgmtfeatures.ResourceGroup{
		Location: &p.manifest.Cluster.Location,
	})
	return err
}

func (p *provisioner) deployPreDeploy(ctx context.Context) error {
	template := generator.New().PreDeployTemplate()

	subnets, err := p.manifest.Subnets()
	if err != nil {
		return err
	}

	parameters := p.getParameters(template.Parameters)
	for name, value := range map[string]string{
		"addressSpace":          subnets.AddressSpace.String(),
		"gatewaySubnetPrefix":   subnets.Gateway.String(),
		"directorySubnetPrefix": subnets.Directory.String(),
		"serversSubnetPrefix":   subnets.Servers.String(),
		"clusterSubnetPrefix":   subnets.Cluster.String(),
	} {
		parameters.Parameters[name] = &arm.ParametersParameter{
			Value: value,
		}
	}

	return p.deployTemplate(ctx, p.config.ResourceGroupName, deploymentPreDeploy, template, parameters)
}

func (p *provisioner) configureServiceSecrets(ctx context.Context) error {
	for _, secretName := range []string{
		env.DomainAdminSecretName,
		env.DomainJoinSecretName,
		env.NodeAdminSecretName,
	} {
		err := p.serviceKeyvault.EnsureSecretExists(ctx, secretName)
		if err != nil {
			return err
		}
	}

	return nil
}
