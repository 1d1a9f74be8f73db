package deploy

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	mgmtfeatures "github.com/Azure/azure-sdk-for-go/services/resources/mgmt/2019-07-01/features"
	"github.com/sirupsen/logrus"

	"github.com/miniad/rscluster/pkg/deploy/generator"
	"github.com/miniad/rscluster/pkg/deploy/scalesetcleaner"
	"github.com/miniad/rscluster/pkg/env"
	"github.com/miniad/rscluster/pkg/manifest"
	"github.com/miniad/rscluster/pkg/util/arm"
	"github.com/miniad/rscluster/pkg/util/azureclient/mgmt/compute"
	"github.com/miniad/rscluster/pkg/util/azureclient/mgmt/dns"
	"github.com/miniad/rscluster/pkg/util/azureclient/mgmt/features"
	keyvaultclient "github.com/miniad/rscluster/pkg/util/azureclient/mgmt/keyvault"
	"github.com/miniad/rscluster/pkg/util/azureclient/mgmt/network"
	"github.com/miniad/rscluster/pkg/util/azureclient/mgmt/storage"
	"github.com/miniad/rscluster/pkg/util/azureerrors"
	"github.com/miniad/rscluster/pkg/util/keyvault"
	"github.com/miniad/rscluster/pkg/util/refreshable"
)

var _ Provisioner = (*provisioner)(nil)

// Provisioner drives the cluster through its phases.  Each Deploy* call is
// idempotent: it reasserts the phase's resources and re-reads whatever later
// phases need.
type Provisioner interface {
	PreDeploy(context.Context) error
	DeployDirectory(context.Context) error
	DeployServers(context.Context) error
	BuildImage(context.Context) error
	DeployCluster(context.Context) error
	ValidateCluster(context.Context) error
	Destroy(context.Context) error
}

type provisioner struct {
	log *logrus.Entry
	env env.Core

	deployments          features.DeploymentsClient
	groups               features.ResourceGroupsClient
	zones                dns.ZonesClient
	recordsets           dns.RecordSetsClient
	accounts             storage.AccountsClient
	publicipaddresses    network.PublicIPAddressesClient
	interfaces           network.InterfacesClient
	appgateways          network.ApplicationGatewaysClient
	vms                  compute.VirtualMachinesClient
	vmss                 compute.VirtualMachineScaleSetsClient
	galleryimageversions compute.GalleryImageVersionsClient
	vaults               keyvaultclient.VaultsClient
	serviceKeyvault      keyvault.Manager
	cleaner              scalesetcleaner.Interface

	fpAuthorizer refreshable.Authorizer

	manifest *manifest.Manifest
	config   *EnvironmentConfig
}

// New initiates a new provisioning utility object
func New(ctx context.Context, log *logrus.Entry, _env env.Core, m *manifest.Manifest, config *EnvironmentConfig) (Provisioner, error) {
	err := config.validate()
	if err != nil {
		return nil, err
	}

	authorizer, err := _env.NewRefreshableAuthorizer()
	if err != nil {
		return nil, err
	}

	tokenCredential, err := _env.NewTokenCredential()
	if err != nil {
		return nil, err
	}

	keyvaultURL := fmt.Sprintf("https://%s.%s/", *config.Configuration.KeyvaultName, _env.Environment().KeyVaultDNSSuffix)
	keyvaultClient, err := keyvault.NewClient(keyvaultURL, tokenCredential, nil)
	if err != nil {
		return nil, err
	}

	vmssClient := compute.NewVirtualMachineScaleSetsClient(_env.Environment(), config.SubscriptionID, authorizer)

	return &provisioner{
		log: log,
		env: _env,

		deployments:          features.NewDeploymentsClient(_env.Environment(), config.SubscriptionID, authorizer),
		groups:               features.NewResourceGroupsClient(_env.Environment(), config.SubscriptionID, authorizer),
		zones:                dns.NewZonesClient(_env.Environment(), config.SubscriptionID, authorizer),
		recordsets:           dns.NewRecordSetsClient(_env.Environment(), config.SubscriptionID, authorizer),
		accounts:             storage.NewAccountsClient(_env.Environment(), config.SubscriptionID, authorizer),
		publicipaddresses:    network.NewPublicIPAddressesClient(_env.Environment(), config.SubscriptionID, authorizer),
		interfaces:           network.NewInterfacesClient(_env.Environment(), config.SubscriptionID, authorizer),
		appgateways:          network.NewApplicationGatewaysClient(_env.Environment(), config.SubscriptionID, authorizer),
		vms:                  compute.NewVirtualMachinesClient(_env.Environment(), config.SubscriptionID, authorizer),
		vmss:                 vmssClient,
		galleryimageversions: compute.NewGalleryImageVersionsClient(_env.Environment(), config.SubscriptionID, authorizer),
		vaults:               keyvaultclient.NewVaultsClient(_env.Environment(), config.SubscriptionID, authorizer),
		serviceKeyvault:      keyvault.NewManager(log, keyvaultClient),
		cleaner:              scalesetcleaner.New(log, vmssClient),

		fpAuthorizer: authorizer,

		manifest: m,
		config:   config,
	}, nil
}

// getParameters returns an *arm.Parameters populated with parameter names and
// values.  The names are taken from the ps argument and the values are taken
// from p.config.Configuration.
func (p *provisioner) getParameters(ps map[string]*arm.TemplateParameter) *arm.Parameters {
	m := map[string]interface{}{}
	v := reflect.ValueOf(*p.config.Configuration)
	for i := 0; i < v.NumField(); i++ {
		if v.Field(i).IsZero() {
			continue
		}

		value := v.Field(i)
		if value.Kind() == reflect.Ptr {
			value = value.Elem()
		}

		m[strings.SplitN(v.Type().Field(i).Tag.Get("json"), ",", 2)[0]] = value.Interface()
	}

	parameters := &arm.Parameters{
		Parameters: map[string]*arm.ParametersParameter{},
	}

	for name := range ps {
		v, ok := m[name]
		if !ok {
			continue
		}

		parameters.Parameters[name] = &arm.ParametersParameter{
			Value: v,
		}
	}

	return parameters
}

// deployTemplate fixes up the typed template and submits it as an incremental
// ARM deployment
func (p *provisioner) deployTemplate(ctx context.Context, resourceGroupName, deploymentName string, t *arm.Template, parameters *arm.Parameters) error {
	template, err := generator.FixupTemplate(t)
	if err != nil {
		return err
	}

	p.log.Infof("deploying %s", deploymentName)
	err = p.deployments.CreateOrUpdateAndWait(ctx, resourceGroupName, deploymentName, mgmtfeatures.Deployment{
		Properties: &mgmtfeatures.DeploymentProperties{
			Template:   template,
			Mode:       mgmtfeatures.Incremental,
			Parameters: parameters.Parameters,
		},
	})
	if azureerrors.IsDeploymentActiveError(err) {
		p.log.Printf("waiting for existing deployment %s", deploymentName)
		err = p.deployments.Wait(ctx, resourceGroupName, deploymentName)
	}

	return err
}
