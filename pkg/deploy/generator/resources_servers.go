package generator

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"fmt"

	mgmtcompute "github.com/Azure/azure-sdk-for-go/services/compute/mgmt/2020-06-01/compute"
	mgmtstorage "github.com/Azure/azure-sdk-for-go/services/storage/mgmt/2019-06-01/storage"
	"github.com/Azure/go-autorest/autorest/to"

	"github.com/miniad/rscluster/pkg/util/arm"
	"github.com/miniad/rscluster/pkg/util/azureclient"
)

// ServersTemplate deploys the storage layer: the Azure Files account holding
// home directories and the gateway VM which re-exports the share over NFS to
// the rest of the cluster.
func (g *generator) ServersTemplate() *arm.Template {
	t := templateStanza()

	for _, param := range []string{
		"vmSize",
		"adminUsername",
		"adminPassword",
		"storageAccountName",
		"shareName",
		"imagePublisher",
		"imageOffer",
		"imageSku",
		"imageVersion",
	} {
		typ := "string"
		if param == "adminPassword" {
			typ = "securestring"
		}
		t.Parameters[param] = &arm.TemplateParameter{Type: typ}
	}
	t.Parameters["shareQuotaGB"] = &arm.TemplateParameter{Type: "int"}

	t.Resources = append(t.Resources,
		g.homeStorageAccount(),
		g.homeFileShare(),
		g.networkInterface(nfsGatewayName+"-nic", serversSubnetName, "", nil),
		g.nfsGatewayVM(),
	)

	t.Outputs = map[string]*arm.Output{
		"nfsGatewayIp": {
			Type:  "string",
			Value: fmt.Sprintf("[reference(resourceId('Microsoft.Network/networkInterfaces', '%s-nic'), '%s').ipConfigurations[0].properties.privateIPAddress]", nfsGatewayName, azureclient.APIVersion("Microsoft.Network")),
		},
		"storageAccountName": {
			Type:  "string",
			Value: "[parameters('storageAccountName')]",
		},
	}

	return t
}

// ServersProvisionTemplate runs the gateway provisioning script as a second
// deployment: the script needs the storage account key, which only exists
// once ServersTemplate has completed.
func (g *generator) ServersProvisionTemplate() *arm.Template {
	t := templateStanza()

	for _, param := range []string{
		"realm",
		"directoryIp",
		"storageAccountName",
		"storageAccountKey",
		"shareName",
		"addressSpace",
	} {
		typ := "string"
		if param == "storageAccountKey" {
			typ = "securestring"
		}
		t.Parameters[param] = &arm.TemplateParameter{Type: typ}
	}

	// the gateway VM is not part of this template
	ext := g.provisionExtension(nfsGatewayName, scriptNFSGateway,
		"realm",
		"directoryIp",
		"storageAccountName",
		"storageAccountKey",
		"shareName",
		"addressSpace",
	)
	ext.DependsOn = nil

	t.Resources = append(t.Resources, ext)

	return t
}

func (g *generator) homeStorageAccount() *arm.Resource {
	return &arm.Resource{
		Resource: &mgmtstorage.Account{
			Sku: &mgmtstorage.Sku{
				Name: "Premium_LRS",
			},
			Kind: mgmtstorage.FileStorage,
			AccountProperties: &mgmtstorage.AccountProperties{
				EnableHTTPSTrafficOnly: to.BoolPtr(true),
			},
			Name:     to.StringPtr("[parameters('storageAccountName')]"),
			Type:     to.StringPtr("Microsoft.Storage/storageAccounts"),
			Location: to.StringPtr("[resourceGroup().location]"),
		},
		APIVersion: azureclient.APIVersion("Microsoft.Storage"),
	}
}

func (g *generator) homeFileShare() *arm.Resource {
	return &arm.Resource{
		Resource: &mgmtstorage.FileShare{
			FileShareProperties: &mgmtstorage.FileShareProperties{
				ShareQuota: to.Int32Ptr(shareQuotaHack),
			},
			Name: to.StringPtr("[concat(parameters('storageAccountName'), '/default/', parameters('shareName'))]"),
			Type: to.StringPtr("Microsoft.Storage/storageAccounts/fileServices/shares"),
		},
		APIVersion: azureclient.APIVersion("Microsoft.Storage"),
		DependsOn: []string{
			"[resourceId('Microsoft.Storage/storageAccounts', parameters('storageAccountName'))]",
		},
	}
}

func (g *generator) nfsGatewayVM() *arm.Resource {
	return &arm.Resource{
		Resource: &mgmtcompute.VirtualMachine{
			VirtualMachineProperties: &mgmtcompute.VirtualMachineProperties{
				HardwareProfile: &mgmtcompute.HardwareProfile{
					VMSize: mgmtcompute.VirtualMachineSizeTypes("[parameters('vmSize')]"),
				},
				StorageProfile: &mgmtcompute.StorageProfile{
					ImageReference: &mgmtcompute.ImageReference{
						Publisher: to.StringPtr("[parameters('imagePublisher')]"),
						Offer:     to.StringPtr("[parameters('imageOffer')]"),
						Sku:       to.StringPtr("[parameters('imageSku')]"),
						Version:   to.StringPtr("[parameters('imageVersion')]"),
					},
					OsDisk: &mgmtcompute.OSDisk{
						Name:         to.StringPtr(nfsGatewayName + "_OSDisk"),
						Caching:      mgmtcompute.CachingTypesReadWrite,
						CreateOption: mgmtcompute.DiskCreateOptionTypesFromImage,
						ManagedDisk: &mgmtcompute.ManagedDiskParameters{
							StorageAccountType: mgmtcompute.StorageAccountTypesPremiumLRS,
						},
					},
				},
				OsProfile: &mgmtcompute.OSProfile{
					ComputerName:  to.StringPtr("nfsgateway"),
					AdminUsername: to.StringPtr("[parameters('adminUsername')]"),
					AdminPassword: to.StringPtr("[parameters('adminPassword')]"),
					LinuxConfiguration: &mgmtcompute.LinuxConfiguration{
						DisablePasswordAuthentication: to.BoolPtr(false),
					},
				},
				NetworkProfile: &mgmtcompute.NetworkProfile{
					NetworkInterfaces: &[]mgmtcompute.NetworkInterfaceReference{
						{
							ID: to.StringPtr(fmt.Sprintf("[resourceId('Microsoft.Network/networkInterfaces', '%s-nic')]", nfsGatewayName)),
						},
					},
				},
			},
			Name:     to.StringPtr(nfsGatewayName),
			Type:     to.StringPtr("Microsoft.Compute/virtualMachines"),
			Location: to.StringPtr("[resourceGroup().location]"),
		},
		APIVersion: azureclient.APIVersion("Microsoft.Compute"),
		DependsOn: []string{
			fmt.Sprintf("[resourceId('Microsoft.Network/networkInterfaces', '%s-nic')]", nfsGatewayName),
			"[resourceId('Microsoft.Storage/storageAccounts/fileServices/shares', parameters('storageAccountName'), 'default', parameters('shareName'))]",
		},
	}
}
