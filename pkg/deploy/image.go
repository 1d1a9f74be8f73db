package deploy

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"
	"fmt"

	mgmtcompute "github.com/Azure/azure-sdk-for-go/services/compute/mgmt/2020-06-01/compute"
	mgmtfeatures "github.com/Azure/azure-sdk-for-go/services/resources/mgmt/2019-07-01/features"

	"github.com/miniad/rscluster/pkg/deploy/generator"
	"github.com/miniad/rscluster/pkg/env"
	"github.com/miniad/rscluster/pkg/util/arm"
)

const builderVMName = "image-builder"

// BuildImage bakes the RStudio golden image: it asserts the shared image
// gallery in the cluster resource group, provisions a builder VM in a
// throwaway resource group, captures the generalized VM as a gallery image
// version, and deletes the throwaway group.  The builder group is deleted
// even when the capture fails, so a re-run starts clean.
func (p *provisioner) BuildImage(ctx context.Context) error {
	if p.manifest.Image.SourceImageID != "" {
		p.log.Printf("source_image_id is set, skipping image build")
		return nil
	}

	err := p.deployGallery(ctx)
	if err != nil {
		return err
	}

	builderResourceGroup := p.config.ResourceGroupName + "-image"

	p.log.Infof("deploying rg %s in %s", builderResourceGroup, p.manifest.Cluster.Location)
	_, err = p.groups.CreateOrUpdate(ctx, builderResourceGroup, mgmtfeatures.ResourceGroup{
		Location: &p.manifest.Cluster.Location,
	})
	if err != nil {
		return err
	}

	buildErr := p.captureImage(ctx, builderResourceGroup)

	p.log.Printf("deleting rg %s", builderResourceGroup)
	err = p.groups.DeleteAndWait(ctx, builderResourceGroup)
	if buildErr != nil {
		return buildErr
	}
	return err
}

func (p *provisioner) deployGallery(ctx context.Context) error {
	template := generator.New().GalleryTemplate()

	parameters := p.getParameters(template.Parameters)
	for name, value := range map[string]interface{}{
		"galleryName":     p.manifest.Image.GalleryName,
		"imageDefinition": p.manifest.Image.ImageDefinition,
	} {
		parameters.Parameters[name] = &arm.ParametersParameter{
			Value: value,
		}
	}

	return p.deployTemplate(ctx, p.config.ResourceGroupName, deploymentGallery, template, parameters)
}

func (p *provisioner) captureImage(ctx context.Context, builderResourceGroup string) error {
	template := generator.New().ImageTemplate()

	adminPassword, err := p.serviceKeyvault.GetSecret(ctx, env.NodeAdminSecretName)
	if err != nil {
		return err
	}

	parameters := p.getParameters(template.Parameters)
	for name, value := range map[string]interface{}{
		"vmSize":         p.manifest.Image.BuilderVMSize,
		"adminPassword":  adminPassword,
		"imagePublisher": p.manifest.Image.Publisher,
		"imageOffer":     p.manifest.Image.Offer,
		"imageSku":       p.manifest.Image.SKU,
		"imageVersion":   p.manifest.Image.Version,
		"rstudioVersion": p.manifest.Image.RStudioVersion,
	} {
		parameters.Parameters[name] = &arm.ParametersParameter{
			Value: value,
		}
	}

	err = p.deployTemplate(ctx, builderResourceGroup, deploymentImage, template, parameters)
	if err != nil {
		return err
	}

	// the provisioning script ends with waagent deprovision, so the VM only
	// needs deallocating and generalizing before capture
	p.log.Printf("generalizing %s", builderVMName)
	err = p.vms.DeallocateAndWait(ctx, builderResourceGroup, builderVMName)
	if err != nil {
		return err
	}

	_, err = p.vms.Generalize(ctx, builderResourceGroup, builderVMName)
	if err != nil {
		return err
	}

	vmID := fmt.Sprintf("/subscriptions/%s/resourceGroups/%s/providers/Microsoft.Compute/virtualMachines/%s", p.config.SubscriptionID, builderResourceGroup, builderVMName)

	p.log.Printf("capturing %s as %s/%s/%s", builderVMName, p.manifest.Image.GalleryName, p.manifest.Image.ImageDefinition, p.manifest.Image.VersionName)
	_, err = p.galleryimageversions.CreateOrUpdateAndWait(ctx, p.config.ResourceGroupName, p.manifest.Image.GalleryName, p.manifest.Image.ImageDefinition, p.manifest.Image.VersionName, mgmtcompute.GalleryImageVersion{
		GalleryImageVersionProperties: &mgmtcompute.GalleryImageVersionProperties{
			StorageProfile: &mgmtcompute.GalleryImageVersionStorageProfile{
				Source: &mgmtcompute.GalleryArtifactVersionSource{
					ID: &vmID,
				},
			},
		},
		Location: &p.manifest.Cluster.Location,
	})
	return err
}
