package deploy

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	mgmtdns "github.com/Azure/azure-sdk-for-go/services/dns/mgmt/2018-05-01/dns"
	"github.com/Azure/go-autorest/autorest/to"

	"github.com/miniad/rscluster/pkg/deploy/generator"
	"github.com/miniad/rscluster/pkg/env"
	"github.com/miniad/rscluster/pkg/util/arm"
	"github.com/miniad/rscluster/pkg/util/azureerrors"
)

const vmssPrefix = "cluster-vmss-"

// DeployCluster deploys the serving tier.  A new image version rolls in as a
// fresh scale set beside the serving one; the old scale sets are deleted only
// once the new deployment has succeeded, and a failed new scale set is removed
// so that the deployment can be retried.
func (p *provisioner) DeployCluster(ctx context.Context) error {
	imageID, vmssName, err := p.clusterImage(ctx)
	if err != nil {
		return err
	}

	directoryIP, err := p.directoryIP(ctx)
	if err != nil {
		return err
	}

	nfsGatewayIP, err := p.nfsGatewayIP(ctx)
	if err != nil {
		return err
	}

	adminPassword, err := p.serviceKeyvault.GetSecret(ctx, env.NodeAdminSecretName)
	if err != nil {
		return err
	}

	domainJoinPassword, err := p.serviceKeyvault.GetSecret(ctx, env.DomainJoinSecretName)
	if err != nil {
		return err
	}

	template := generator.New().ClusterTemplate()

	parameters := p.getParameters(template.Parameters)
	for name, value := range map[string]interface{}{
		"vmSize":             p.manifest.Scaling.VMSize,
		"vmssName":           vmssName,
		"adminPassword":      adminPassword,
		"domainJoinPassword": domainJoinPassword,
		"realm":              p.manifest.Domain.Realm,
		"directoryIp":        directoryIP,
		"nfsGatewayIp":       nfsGatewayIP,
		"imageId":            imageID,
		"vmssCapacity":       p.manifest.Scaling.DefaultCapacity,
		"minCapacity":        strconv.FormatInt(p.manifest.Scaling.MinCapacity, 10),
		"maxCapacity":        strconv.FormatInt(p.manifest.Scaling.MaxCapacity, 10),
		"appGatewayCapacity": p.manifest.Scaling.GatewayCapacity,
		"scaleOutThreshold":  p.manifest.Scaling.ScaleOutCPUPercent,
		"scaleInThreshold":   p.manifest.Scaling.ScaleInCPUPercent,
	} {
		parameters.Parameters[name] = &arm.ParametersParameter{
			Value: value,
		}
	}

	for i := 0; i < 2; i++ {
		err = p.deployTemplate(ctx, p.config.ResourceGroupName, deploymentCluster, template, parameters)
		if err != nil {
			p.log.Warn(err)

			if i == 0 && p.cleaner.RemoveFailedNewScaleset(ctx, p.config.ResourceGroupName, vmssName) {
				continue
			}
			return err
		}
		break
	}

	err = p.removeOldScalesets(ctx, vmssName)
	if err != nil {
		return err
	}

	return p.configureDNS(ctx)
}

// clusterImage resolves the image the scale set boots from: the pinned
// source_image_id if the manifest has one, otherwise the gallery image version
// published by the image phase.  The scale set name carries the version, so a
// new image never updates the serving scale set in place.
func (p *provisioner) clusterImage(ctx context.Context) (imageID, vmssName string, err error) {
	if p.manifest.Image.SourceImageID != "" {
		imageID = p.manifest.Image.SourceImageID
		vmssName = vmssPrefix + sanitizeSuffix(imageID[strings.LastIndexByte(imageID, '/')+1:])
		return imageID, vmssName, nil
	}

	version, err := p.galleryimageversions.Get(ctx, p.config.ResourceGroupName, p.manifest.Image.GalleryName, p.manifest.Image.ImageDefinition, p.manifest.Image.VersionName, "")
	if err != nil {
		if azureerrors.IsNotFoundError(err) {
			return "", "", fmt.Errorf("gallery image version %s/%s/%s not found: run the image phase first", p.manifest.Image.GalleryName, p.manifest.Image.ImageDefinition, p.manifest.Image.VersionName)
		}
		return "", "", err
	}

	return *version.ID, vmssPrefix + sanitizeSuffix(p.manifest.Image.VersionName), nil
}

func sanitizeSuffix(s string) string {
	return strings.ToLower(strings.NewReplacer(".", "-", "_", "-").Replace(s))
}

// removeOldScalesets deletes every cluster scale set other than the one just
// deployed.  Callers only get here after the new scale set is up, so the old
// capacity is no longer needed.
func (p *provisioner) removeOldScalesets(ctx context.Context, vmssName string) error {
	scalesets, err := p.vmss.List(ctx, p.config.ResourceGroupName)
	if err != nil {
		return err
	}

	for _, vmss := range scalesets {
		if *vmss.Name == vmssName || !strings.HasPrefix(*vmss.Name, vmssPrefix) {
			continue
		}

		p.log.Printf("deleting scaleset %s", *vmss.Name)
		err = p.vmss.DeleteAndWait(ctx, p.config.ResourceGroupName, *vmss.Name)
		if err != nil {
			return err
		}
	}

	return nil
}

// configureDNS points the cluster's A record at the application gateway.  The
// zone itself is a prerequisite, not something this tool creates.
func (p *provisioner) configureDNS(ctx context.Context) error {
	_, err := p.zones.Get(ctx, p.dnsZoneResourceGroup(), p.manifest.Cluster.DNSZoneName)
	if err != nil {
		if azureerrors.IsNotFoundError(err) || azureerrors.IsResourceGroupNotFoundError(err) {
			return fmt.Errorf("dns zone %s not found in resource group %s", p.manifest.Cluster.DNSZoneName, p.dnsZoneResourceGroup())
		}
		return err
	}

	ip, err := p.gatewayPublicIP(ctx)
	if err != nil {
		return err
	}

	p.log.Printf("configuring %s.%s -> %s", p.manifest.Cluster.Name, p.manifest.Cluster.DNSZoneName, ip)
	_, err = p.recordsets.CreateOrUpdate(ctx, p.dnsZoneResourceGroup(), p.manifest.Cluster.DNSZoneName, p.manifest.Cluster.Name, mgmtdns.A, mgmtdns.RecordSet{
		RecordSetProperties: &mgmtdns.RecordSetProperties{
			TTL: to.Int64Ptr(300),
			ARecords: &[]mgmtdns.ARecord{
				{
					Ipv4Address: &ip,
				},
			},
		},
	}, "", "")
	return err
}

func (p *provisioner) dnsZoneResourceGroup() string {
	if p.config.Configuration.DNSZoneResourceGroupName != nil {
		return *p.config.Configuration.DNSZoneResourceGroupName
	}
	return p.config.ResourceGroupName
}
