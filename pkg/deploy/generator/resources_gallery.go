package generator

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	mgmtcompute "github.com/Azure/azure-sdk-for-go/services/compute/mgmt/2020-06-01/compute"
	"github.com/Azure/go-autorest/autorest/to"

	"github.com/miniad/rscluster/pkg/util/arm"
	"github.com/miniad/rscluster/pkg/util/azureclient"
)

// GalleryTemplate deploys the shared image gallery and the RStudio image
// definition into the cluster resource group.  The gallery outlives the image
// builder resource group: captured image versions stay behind when the builder
// is thrown away.
func (g *generator) GalleryTemplate() *arm.Template {
	t := templateStanza()

	for _, param := range []string{
		"galleryName",
		"imageDefinition",
	} {
		t.Parameters[param] = &arm.TemplateParameter{Type: "string"}
	}

	t.Resources = append(t.Resources,
		g.gallery(),
		g.galleryImage(),
	)

	return t
}

func (g *generator) gallery() *arm.Resource {
	return &arm.Resource{
		Resource: &mgmtcompute.Gallery{
			GalleryProperties: &mgmtcompute.GalleryProperties{
				Description: to.StringPtr("RStudio cluster golden images"),
			},
			Name:     to.StringPtr("[parameters('galleryName')]"),
			Type:     to.StringPtr("Microsoft.Compute/galleries"),
			Location: to.StringPtr("[resourceGroup().location]"),
		},
		APIVersion: azureclient.APIVersion("Microsoft.Compute/galleries"),
	}
}

func (g *generator) galleryImage() *arm.Resource {
	return &arm.Resource{
		Resource: &mgmtcompute.GalleryImage{
			GalleryImageProperties: &mgmtcompute.GalleryImageProperties{
				OsType:           mgmtcompute.Linux,
				OsState:          mgmtcompute.Generalized,
				HyperVGeneration: mgmtcompute.V2,
				Identifier: &mgmtcompute.GalleryImageIdentifier{
					Publisher: to.StringPtr("rscluster"),
					Offer:     to.StringPtr("rstudio-server"),
					Sku:       to.StringPtr("[parameters('imageDefinition')]"),
				},
			},
			Name:     to.StringPtr("[concat(parameters('galleryName'), '/', parameters('imageDefinition'))]"),
			Type:     to.StringPtr("Microsoft.Compute/galleries/images"),
			Location: to.StringPtr("[resourceGroup().location]"),
		},
		APIVersion: azureclient.APIVersion("Microsoft.Compute/galleries"),
		DependsOn: []string{
			"[resourceId('Microsoft.Compute/galleries', parameters('galleryName'))]",
		},
	}
}
