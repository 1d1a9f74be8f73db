package compute

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"

	mgmtcompute "github.com/Azure/azure-sdk-for-go/services/compute/mgmt/2020-06-01/compute"
)

// GalleryImageVersionsClientAddons contains addons for GalleryImageVersionsClient
type GalleryImageVersionsClientAddons interface {
	CreateOrUpdateAndWait(ctx context.Context, resourceGroupName string, galleryName string, galleryImageName string, galleryImageVersionName string, galleryImageVersion mgmtcompute.GalleryImageVersion) (mgmtcompute.GalleryImageVersion, error)
}

func (c *galleryImageVersionsClient) CreateOrUpdateAndWait(ctx context.Context, resourceGroupName string, galleryName string, galleryImageName string, galleryImageVersionName string, galleryImageVersion mgmtcompute.GalleryImageVersion) (mgmtcompute.GalleryImageVersion, error) {
	future, err := c.CreateOrUpdate(ctx, resourceGroupName, galleryName, galleryImageName, galleryImageVersionName, galleryImageVersion)
	if err != nil {
		return mgmtcompute.GalleryImageVersion{}, err
	}

	err = future.WaitForCompletionRef(ctx, c.Client)
	if err != nil {
		return mgmtcompute.GalleryImageVersion{}, err
	}

	return future.Result(c.GalleryImageVersionsClient)
}
