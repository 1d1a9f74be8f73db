package deploy

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"
	"fmt"

	"github.com/miniad/rscluster/pkg/deploy/generator"
	"github.com/miniad/rscluster/pkg/env"
	"github.com/miniad/rscluster/pkg/util/arm"
)

// DeployServers deploys the storage phase in two halves: the Azure Files
// account, share and gateway VM first, then the provisioning extension, which
// needs the storage key that only exists once the first half completes.
func (p *provisioner) DeployServers(ctx context.Context) error {
	err := p.deployServersInfra(ctx)
	if err != nil {
		return err
	}

	err = p.deployServersProvision(ctx)
	if err != nil {
		return err
	}

	_, err = p.nfsGatewayIP(ctx)
	return err
}

func (p *provisioner) deployServersInfra(ctx context.Context) error {
	template := generator.New().ServersTemplate()

	adminPassword, err := p.serviceKeyvault.GetSecret(ctx, env.NodeAdminSecretName)
	if err != nil {
		return err
	}

	parameters := p.getParameters(template.Parameters)
	for name, value := range map[string]interface{}{
		"vmSize":         p.manifest.Servers.VMSize,
		"adminPassword":  adminPassword,
		"shareName":      p.manifest.Servers.ShareName,
		"shareQuotaGB":   p.manifest.Servers.ShareQuotaGB,
		"imagePublisher": p.manifest.Image.Publisher,
		"imageOffer":     p.manifest.Image.Offer,
		"imageSku":       p.manifest.Image.SKU,
		"imageVersion":   p.manifest.Image.Version,
	} {
		parameters.Parameters[name] = &arm.ParametersParameter{
			Value: value,
		}
	}

	return p.deployTemplate(ctx, p.config.ResourceGroupName, deploymentServers, template, parameters)
}

func (p *provisioner) deployServersProvision(ctx context.Context) error {
	template := generator.New().ServersProvisionTemplate()

	directoryIP, err := p.directoryIP(ctx)
	if err != nil {
		return err
	}

	storageAccountKey, err := p.storageAccountKey(ctx)
	if err != nil {
		return err
	}

	subnets, err := p.manifest.Subnets()
	if err != nil {
		return err
	}

	parameters := p.getParameters(template.Parameters)
	for name, value := range map[string]interface{}{
		"realm":             p.manifest.Domain.Realm,
		"directoryIp":       directoryIP,
		"storageAccountKey": storageAccountKey,
		"shareName":         p.manifest.Servers.ShareName,
		"addressSpace":      subnets.AddressSpace.String(),
	} {
		parameters.Parameters[name] = &arm.ParametersParameter{
			Value: value,
		}
	}

	return p.deployTemplate(ctx, p.config.ResourceGroupName, deploymentServersProvision, template, parameters)
}

// storageAccountKey reads the primary key of the home directory account
func (p *provisioner) storageAccountKey(ctx context.Context) (string, error) {
	accountName := *p.config.Configuration.StorageAccountName

	keys, err := p.accounts.ListKeys(ctx, p.config.ResourceGroupName, accountName, "")
	if err != nil {
		return "", err
	}

	if keys.Keys == nil || len(*keys.Keys) == 0 {
		return "", fmt.Errorf("storage account %s has no keys", accountName)
	}

	return *(*keys.Keys)[0].Value, nil
}
