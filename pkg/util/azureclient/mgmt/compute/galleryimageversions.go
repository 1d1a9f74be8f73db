package compute

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"
	"time"

	mgmtcompute "github.com/Azure/azure-sdk-for-go/services/compute/mgmt/2020-06-01/compute"
	"github.com/Azure/go-autorest/autorest"

	"github.com/miniad/rscluster/pkg/util/azureclient"
)

// GalleryImageVersionsClient is a minimal interface for azure GalleryImageVersionsClient
type GalleryImageVersionsClient interface {
	Get(ctx context.Context, resourceGroupName string, galleryName string, galleryImageName string, galleryImageVersionName string, expand mgmtcompute.ReplicationStatusTypes) (result mgmtcompute.GalleryImageVersion, err error)
	GalleryImageVersionsClientAddons
}

type galleryImageVersionsClient struct {
	mgmtcompute.GalleryImageVersionsClient
}

var _ GalleryImageVersionsClient = &galleryImageVersionsClient{}

// NewGalleryImageVersionsClient creates a new GalleryImageVersionsClient
func NewGalleryImageVersionsClient(environment *azureclient.Environment, subscriptionID string, authorizer autorest.Authorizer) GalleryImageVersionsClient {
	client := mgmtcompute.NewGalleryImageVersionsClientWithBaseURI(environment.ResourceManagerEndpoint, subscriptionID)
	client.Authorizer = authorizer
	client.PollingDelay = 10 * time.Second
	client.PollingDuration = 2 * time.Hour
	client.Sender = azureclient.DecorateSenderWithLogging(client.Sender)

	return &galleryImageVersionsClient{
		GalleryImageVersionsClient: client,
	}
}
