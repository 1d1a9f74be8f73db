package deploy

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"

	"github.com/miniad/rscluster/pkg/deploy/generator"
	"github.com/miniad/rscluster/pkg/env"
	"github.com/miniad/rscluster/pkg/util/arm"
)

// DeployDirectory deploys the Mini-AD domain controller phase.  The DC's
// static address is derived from the manifest, so the phase can be re-run and
// later phases can derive it independently.
func (p *provisioner) DeployDirectory(ctx context.Context) error {
	template := generator.New().DirectoryTemplate()

	directoryIP, err := p.manifest.DirectoryIP()
	if err != nil {
		return err
	}

	adminPassword, err := p.serviceKeyvault.GetSecret(ctx, env.NodeAdminSecretName)
	if err != nil {
		return err
	}

	domainAdminPassword, err := p.serviceKeyvault.GetSecret(ctx, env.DomainAdminSecretName)
	if err != nil {
		return err
	}

	domainJoinPassword, err := p.serviceKeyvault.GetSecret(ctx, env.DomainJoinSecretName)
	if err != nil {
		return err
	}

	parameters := p.getParameters(template.Parameters)
	for name, value := range map[string]interface{}{
		"vmSize":              p.manifest.Directory.VMSize,
		"dataDiskSizeGB":      p.manifest.Directory.DataDiskSizeGB,
		"adminPassword":       adminPassword,
		"domainAdminPassword": domainAdminPassword,
		"domainJoinPassword":  domainJoinPassword,
		"realm":               p.manifest.Domain.Realm,
		"netbiosName":         p.manifest.Domain.NetbiosName,
		"directoryIp":         directoryIP,
		"imagePublisher":      p.manifest.Image.Publisher,
		"imageOffer":          p.manifest.Image.Offer,
		"imageSku":            p.manifest.Image.SKU,
		"imageVersion":        p.manifest.Image.Version,
	} {
		parameters.Parameters[name] = &arm.ParametersParameter{
			Value: value,
		}
	}

	err = p.deployTemplate(ctx, p.config.ResourceGroupName, deploymentDirectory, template, parameters)
	if err != nil {
		return err
	}

	// fail fast if the deployment somehow produced no address
	_, err = p.directoryIP(ctx)
	return err
}
