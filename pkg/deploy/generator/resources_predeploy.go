package generator

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"fmt"

	mgmtkeyvault "github.com/Azure/azure-sdk-for-go/services/keyvault/mgmt/2019-09-01/keyvault"
	mgmtnetwork "github.com/Azure/azure-sdk-for-go/services/network/mgmt/2020-08-01/network"
	"github.com/Azure/go-autorest/autorest/to"

	"github.com/miniad/rscluster/pkg/util/arm"
)

// PreDeployTemplate lays the shared ground the phases build on: the four
// subnets with their security groups, and the service key vault holding the
// generated AD passwords.
func (g *generator) PreDeployTemplate() *arm.Template {
	t := templateStanza()

	for _, param := range []string{
		"addressSpace",
		"gatewaySubnetPrefix",
		"directorySubnetPrefix",
		"serversSubnetPrefix",
		"clusterSubnetPrefix",
		"keyvaultName",
		"deployServicePrincipalId",
	} {
		t.Parameters[param] = &arm.TemplateParameter{Type: "string"}
	}

	t.Resources = append(t.Resources,
		g.gatewayNSG(),
		g.directoryNSG(),
		g.serversNSG(),
		g.clusterNSG(),
		g.clusterVnet(),
		g.serviceKeyvault(),
	)

	return t
}

func (g *generator) clusterVnet() *arm.Resource {
	subnet := func(name, prefixParameter, nsgName string) mgmtnetwork.Subnet {
		return mgmtnetwork.Subnet{
			SubnetPropertiesFormat: &mgmtnetwork.SubnetPropertiesFormat{
				AddressPrefix: to.StringPtr(fmt.Sprintf("[parameters('%s')]", prefixParameter)),
				NetworkSecurityGroup: &mgmtnetwork.SecurityGroup{
					ID: to.StringPtr(fmt.Sprintf("[resourceId('Microsoft.Network/networkSecurityGroups', '%s')]", nsgName)),
				},
			},
			Name: to.StringPtr(name),
		}
	}

	return g.virtualNetwork(vnetName, "[parameters('addressSpace')]",
		&[]mgmtnetwork.Subnet{
			subnet(gatewaySubnetName, "gatewaySubnetPrefix", gatewayNSGName),
			subnet(directorySubnetName, "directorySubnetPrefix", directoryNSGName),
			subnet(serversSubnetName, "serversSubnetPrefix", serversNSGName),
			subnet(clusterSubnetName, "clusterSubnetPrefix", clusterNSGName),
		},
		[]string{
			fmt.Sprintf("[resourceId('Microsoft.Network/networkSecurityGroups', '%s')]", gatewayNSGName),
			fmt.Sprintf("[resourceId('Microsoft.Network/networkSecurityGroups', '%s')]", directoryNSGName),
			fmt.Sprintf("[resourceId('Microsoft.Network/networkSecurityGroups', '%s')]", serversNSGName),
			fmt.Sprintf("[resourceId('Microsoft.Network/networkSecurityGroups', '%s')]", clusterNSGName),
		},
	)
}

func (g *generator) serviceKeyvault() *arm.Resource {
	return g.keyVault("[parameters('keyvaultName')]", &[]mgmtkeyvault.AccessPolicyEntry{
		{
			TenantID: &tenantUUIDHack,
			ObjectID: to.StringPtr("[parameters('deployServicePrincipalId')]"),
			Permissions: &mgmtkeyvault.Permissions{
				Secrets: &[]mgmtkeyvault.SecretPermissions{
					mgmtkeyvault.SecretPermissionsGet,
					mgmtkeyvault.SecretPermissionsList,
					mgmtkeyvault.SecretPermissionsSet,
					mgmtkeyvault.SecretPermissionsDelete,
					mgmtkeyvault.SecretPermissionsPurge,
				},
			},
		},
	})
}
