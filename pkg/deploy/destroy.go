package deploy

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"

	mgmtdns "github.com/Azure/azure-sdk-for-go/services/dns/mgmt/2018-05-01/dns"

	"github.com/miniad/rscluster/pkg/util/azureerrors"
)

// Destroy tears the cluster down in reverse: the DNS record first, so clients
// stop resolving to a gateway that is about to disappear, then the builder and
// cluster resource groups, and finally a purge of the soft-deleted key vault
// so that a redeploy under the same name does not collide with it.
func (p *provisioner) Destroy(ctx context.Context) error {
	p.log.Printf("deleting record %s.%s", p.manifest.Cluster.Name, p.manifest.Cluster.DNSZoneName)
	_, err := p.recordsets.Delete(ctx, p.dnsZoneResourceGroup(), p.manifest.Cluster.DNSZoneName, p.manifest.Cluster.Name, mgmtdns.A, "")
	if err != nil && !azureerrors.IsNotFoundError(err) && !azureerrors.IsResourceGroupNotFoundError(err) {
		return err
	}

	for _, resourceGroupName := range []string{
		p.config.ResourceGroupName + "-image",
		p.config.ResourceGroupName,
	} {
		p.log.Printf("deleting rg %s", resourceGroupName)
		err = p.groups.DeleteAndWait(ctx, resourceGroupName)
		if err != nil && !azureerrors.IsResourceGroupNotFoundError(err) {
			return err
		}
	}

	// the vault is soft-deleted with the resource group and its name stays
	// reserved until purged
	if p.config.Configuration.KeyvaultName != nil {
		p.log.Printf("purging vault %s", *p.config.Configuration.KeyvaultName)
		err = p.vaults.PurgeDeletedAndWait(ctx, *p.config.Configuration.KeyvaultName, p.manifest.Cluster.Location)
		if err != nil && !azureerrors.IsNotFoundError(err) {
			p.log.Warn(err)
		}
	}

	return nil
}
