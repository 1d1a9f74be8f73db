package generator

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"fmt"

	mgmtcompute "github.com/Azure/azure-sdk-for-go/services/compute/mgmt/2020-06-01/compute"
	mgmtnetwork "github.com/Azure/azure-sdk-for-go/services/network/mgmt/2020-08-01/network"
	"github.com/Azure/go-autorest/autorest/to"

	"github.com/miniad/rscluster/pkg/util/arm"
	"github.com/miniad/rscluster/pkg/util/azureclient"
)

const (
	builderVnetName   = "builder-vnet"
	builderSubnetName = "builder-subnet"
)

// ImageTemplate deploys the image builder into its own throwaway resource
// group: a private vnet and one VM whose provisioning script installs R and
// RStudio Server.  The builder is generalized and captured by the provisioner
// once the deployment completes.
func (g *generator) ImageTemplate() *arm.Template {
	t := templateStanza()

	for _, param := range []string{
		"vmSize",
		"adminUsername",
		"adminPassword",
		"imagePublisher",
		"imageOffer",
		"imageSku",
		"imageVersion",
		"rstudioVersion",
	} {
		typ := "string"
		if param == "adminPassword" {
			typ = "securestring"
		}
		t.Parameters[param] = &arm.TemplateParameter{Type: typ}
	}

	t.Resources = append(t.Resources,
		g.virtualNetwork(builderVnetName, "10.0.0.0/24",
			&[]mgmtnetwork.Subnet{
				{
					SubnetPropertiesFormat: &mgmtnetwork.SubnetPropertiesFormat{
						AddressPrefix: to.StringPtr("10.0.0.0/24"),
					},
					Name: to.StringPtr(builderSubnetName),
				},
			},
			nil,
		),
		g.builderNIC(),
		g.builderVM(),
		g.provisionExtension(builderVMName, scriptRStudioImage,
			"rstudioVersion",
		),
	)

	return t
}

func (g *generator) builderNIC() *arm.Resource {
	return &arm.Resource{
		Resource: &mgmtnetwork.Interface{
			InterfacePropertiesFormat: &mgmtnetwork.InterfacePropertiesFormat{
				IPConfigurations: &[]mgmtnetwork.InterfaceIPConfiguration{
					{
						InterfaceIPConfigurationPropertiesFormat: &mgmtnetwork.InterfaceIPConfigurationPropertiesFormat{
							Subnet: &mgmtnetwork.Subnet{
								ID: to.StringPtr(fmt.Sprintf("[resourceId('Microsoft.Network/virtualNetworks/subnets', '%s', '%s')]", builderVnetName, builderSubnetName)),
							},
							PrivateIPAllocationMethod: mgmtnetwork.Dynamic,
						},
						Name: to.StringPtr("ipconfig"),
					},
				},
			},
			Name:     to.StringPtr(builderVMName + "-nic"),
			Type:     to.StringPtr("Microsoft.Network/networkInterfaces"),
			Location: to.StringPtr("[resourceGroup().location]"),
		},
		APIVersion: azureclient.APIVersion("Microsoft.Network"),
		DependsOn: []string{
			fmt.Sprintf("[resourceId('Microsoft.Network/virtualNetworks', '%s')]", builderVnetName),
		},
	}
}

func (g *generator) builderVM() *arm.Resource {
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
						Name:         to.StringPtr(builderVMName + "_OSDisk"),
						Caching:      mgmtcompute.CachingTypesReadWrite,
						CreateOption: mgmtcompute.DiskCreateOptionTypesFromImage,
						ManagedDisk: &mgmtcompute.ManagedDiskParameters{
							StorageAccountType: mgmtcompute.StorageAccountTypesPremiumLRS,
						},
					},
				},
				OsProfile: &mgmtcompute.OSProfile{
					ComputerName:  to.StringPtr("builder"),
					AdminUsername: to.StringPtr("[parameters('adminUsername')]"),
					AdminPassword: to.StringPtr("[parameters('adminPassword')]"),
					LinuxConfiguration: &mgmtcompute.LinuxConfiguration{
						DisablePasswordAuthentication: to.BoolPtr(false),
					},
				},
				NetworkProfile: &mgmtcompute.NetworkProfile{
					NetworkInterfaces: &[]mgmtcompute.NetworkInterfaceReference{
						{
							ID: to.StringPtr(fmt.Sprintf("[resourceId('Microsoft.Network/networkInterfaces', '%s-nic')]", builderVMName)),
						},
					},
				},
			},
			Name:     to.StringPtr(builderVMName),
			Type:     to.StringPtr("Microsoft.Compute/virtualMachines"),
			Location: to.StringPtr("[resourceGroup().location]"),
		},
		APIVersion: azureclient.APIVersion("Microsoft.Compute"),
		DependsOn: []string{
			fmt.Sprintf("[resourceId('Microsoft.Network/networkInterfaces', '%s-nic')]", builderVMName),
		},
	}
}
