package generator

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"fmt"

	mgmtcompute "github.com/Azure/azure-sdk-for-go/services/compute/mgmt/2020-06-01/compute"
	"github.com/Azure/go-autorest/autorest/to"

	"github.com/miniad/rscluster/pkg/util/arm"
	"github.com/miniad/rscluster/pkg/util/azureclient"
)

// DirectoryTemplate deploys the Mini-AD domain controller: a single VM with a
// static address, a data disk for the Samba state, and a provisioning script
// which stands up the domain.
func (g *generator) DirectoryTemplate() *arm.Template {
	t := templateStanza()

	for _, param := range []string{
		"vmSize",
		"adminUsername",
		"adminPassword",
		"domainAdminPassword",
		"domainJoinPassword",
		"realm",
		"netbiosName",
		"directoryIp",
		"imagePublisher",
		"imageOffer",
		"imageSku",
		"imageVersion",
	} {
		typ := "string"
		switch param {
		case "adminPassword", "domainAdminPassword", "domainJoinPassword":
			typ = "securestring"
		}
		t.Parameters[param] = &arm.TemplateParameter{Type: typ}
	}
	t.Parameters["dataDiskSizeGB"] = &arm.TemplateParameter{Type: "int"}

	t.Resources = append(t.Resources,
		g.networkInterface(directoryVMName+"-nic", directorySubnetName, "[parameters('directoryIp')]", nil),
		g.directoryVM(),
		g.provisionExtension(directoryVMName, scriptMiniAD,
			"realm",
			"netbiosName",
			"directoryIp",
			"domainAdminPassword",
			"domainJoinPassword",
		),
	)

	t.Outputs = map[string]*arm.Output{
		"directoryIp": {
			Type:  "string",
			Value: fmt.Sprintf("[reference(resourceId('Microsoft.Network/networkInterfaces', '%s-nic'), '%s').ipConfigurations[0].properties.privateIPAddress]", directoryVMName, azureclient.APIVersion("Microsoft.Network")),
		},
	}

	return t
}

func (g *generator) directoryVM() *arm.Resource {
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
						Name:         to.StringPtr(directoryVMName + "_OSDisk"),
						Caching:      mgmtcompute.CachingTypesReadWrite,
						CreateOption: mgmtcompute.DiskCreateOptionTypesFromImage,
						ManagedDisk: &mgmtcompute.ManagedDiskParameters{
							StorageAccountType: mgmtcompute.StorageAccountTypesPremiumLRS,
						},
					},
					// Samba state lives on the data disk so the
					// domain survives OS disk loss
					DataDisks: &[]mgmtcompute.DataDisk{
						{
							Name:         to.StringPtr(directoryVMName + "_DataDisk"),
							Lun:          to.Int32Ptr(0),
							CreateOption: mgmtcompute.DiskCreateOptionTypesEmpty,
							DiskSizeGB:   to.Int32Ptr(dataDiskSizeHack),
							ManagedDisk: &mgmtcompute.ManagedDiskParameters{
								StorageAccountType: mgmtcompute.StorageAccountTypesPremiumLRS,
							},
						},
					},
				},
				OsProfile: &mgmtcompute.OSProfile{
					ComputerName:  to.StringPtr("directory"),
					AdminUsername: to.StringPtr("[parameters('adminUsername')]"),
					AdminPassword: to.StringPtr("[parameters('adminPassword')]"),
					LinuxConfiguration: &mgmtcompute.LinuxConfiguration{
						DisablePasswordAuthentication: to.BoolPtr(false),
					},
				},
				NetworkProfile: &mgmtcompute.NetworkProfile{
					NetworkInterfaces: &[]mgmtcompute.NetworkInterfaceReference{
						{
							ID: to.StringPtr(fmt.Sprintf("[resourceId('Microsoft.Network/networkInterfaces', '%s-nic')]", directoryVMName)),
						},
					},
				},
			},
			Name:     to.StringPtr(directoryVMName),
			Type:     to.StringPtr("Microsoft.Compute/virtualMachines"),
			Location: to.StringPtr("[resourceGroup().location]"),
		},
		APIVersion: azureclient.APIVersion("Microsoft.Compute"),
		DependsOn: []string{
			fmt.Sprintf("[resourceId('Microsoft.Network/networkInterfaces', '%s-nic')]", directoryVMName),
		},
	}
}

// provisionExtension wraps script in a custom script extension on vmName,
// exporting the named template parameters to it as environment variables
func (g *generator) provisionExtension(vmName, script string, variables ...string) *arm.Resource {
	return &arm.Resource{
		Resource: &mgmtcompute.VirtualMachineExtension{
			VirtualMachineExtensionProperties: &mgmtcompute.VirtualMachineExtensionProperties{
				Publisher:               to.StringPtr("Microsoft.Azure.Extensions"),
				Type:                    to.StringPtr("CustomScript"),
				TypeHandlerVersion:      to.StringPtr("2.0"),
				AutoUpgradeMinorVersion: to.BoolPtr(true),
				Settings:                map[string]interface{}{},
				ProtectedSettings: map[string]interface{}{
					"script": g.customScript(script, variables...),
				},
			},
			Name:     to.StringPtr(vmName + "/provision"),
			Type:     to.StringPtr("Microsoft.Compute/virtualMachines/extensions"),
			Location: to.StringPtr("[resourceGroup().location]"),
		},
		APIVersion: azureclient.APIVersion("Microsoft.Compute"),
		DependsOn: []string{
			fmt.Sprintf("[resourceId('Microsoft.Compute/virtualMachines', '%s')]", vmName),
		},
	}
}
