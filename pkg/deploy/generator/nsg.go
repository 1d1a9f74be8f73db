package generator

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	mgmtnetwork "github.com/Azure/azure-sdk-for-go/services/network/mgmt/2020-08-01/network"
	"github.com/Azure/go-autorest/autorest/to"

	"github.com/miniad/rscluster/pkg/util/arm"
)

func (g *generator) gatewayNSG() *arm.Resource {
	return g.securityGroup(gatewayNSGName, &[]mgmtnetwork.SecurityRule{
		{
			SecurityRulePropertiesFormat: &mgmtnetwork.SecurityRulePropertiesFormat{
				Protocol:                 mgmtnetwork.SecurityRuleProtocolTCP,
				SourcePortRange:          to.StringPtr("*"),
				DestinationPortRanges:    &[]string{"80", "443"},
				SourceAddressPrefix:      to.StringPtr("Internet"),
				DestinationAddressPrefix: to.StringPtr("*"),
				Access:                   mgmtnetwork.SecurityRuleAccessAllow,
				Priority:                 to.Int32Ptr(120),
				Direction:                mgmtnetwork.SecurityRuleDirectionInbound,
			},
			Name: to.StringPtr("web_in"),
		},
		{
			// Application Gateway v2 requires this range open to
			// GatewayManager
			SecurityRulePropertiesFormat: &mgmtnetwork.SecurityRulePropertiesFormat{
				Protocol:                 mgmtnetwork.SecurityRuleProtocolTCP,
				SourcePortRange:          to.StringPtr("*"),
				DestinationPortRange:     to.StringPtr("65200-65535"),
				SourceAddressPrefix:      to.StringPtr("GatewayManager"),
				DestinationAddressPrefix: to.StringPtr("*"),
				Access:                   mgmtnetwork.SecurityRuleAccessAllow,
				Priority:                 to.Int32Ptr(140),
				Direction:                mgmtnetwork.SecurityRuleDirectionInbound,
			},
			Name: to.StringPtr("appgw_management_in"),
		},
	})
}

// directoryNSG admits the AD protocol suite from inside the address space:
// DNS, Kerberos, kpasswd, LDAP(S), SMB and the global catalog.
func (g *generator) directoryNSG() *arm.Resource {
	rules := []mgmtnetwork.SecurityRule{}

	for i, svc := range []struct {
		name     string
		protocol mgmtnetwork.SecurityRuleProtocol
		ports    []string
	}{
		{"dns_tcp_in", mgmtnetwork.SecurityRuleProtocolTCP, []string{"53"}},
		{"dns_udp_in", mgmtnetwork.SecurityRuleProtocolUDP, []string{"53"}},
		{"kerberos_tcp_in", mgmtnetwork.SecurityRuleProtocolTCP, []string{"88", "464"}},
		{"kerberos_udp_in", mgmtnetwork.SecurityRuleProtocolUDP, []string{"88", "464"}},
		{"ldap_in", mgmtnetwork.SecurityRuleProtocolTCP, []string{"389", "636"}},
		{"smb_in", mgmtnetwork.SecurityRuleProtocolTCP, []string{"445"}},
		{"global_catalog_in", mgmtnetwork.SecurityRuleProtocolTCP, []string{"3268", "3269"}},
	} {
		rules = append(rules, mgmtnetwork.SecurityRule{
			SecurityRulePropertiesFormat: &mgmtnetwork.SecurityRulePropertiesFormat{
				Protocol:                 svc.protocol,
				SourcePortRange:          to.StringPtr("*"),
				DestinationPortRanges:    &svc.ports,
				SourceAddressPrefix:      to.StringPtr("[parameters('addressSpace')]"),
				DestinationAddressPrefix: to.StringPtr("*"),
				Access:                   mgmtnetwork.SecurityRuleAccessAllow,
				Priority:                 to.Int32Ptr(int32(120 + 10*i)),
				Direction:                mgmtnetwork.SecurityRuleDirectionInbound,
			},
			Name: to.StringPtr(svc.name),
		})
	}

	return g.securityGroup(directoryNSGName, &rules)
}

func (g *generator) serversNSG() *arm.Resource {
	return g.securityGroup(serversNSGName, &[]mgmtnetwork.SecurityRule{
		{
			SecurityRulePropertiesFormat: &mgmtnetwork.SecurityRulePropertiesFormat{
				Protocol:                 mgmtnetwork.SecurityRuleProtocolTCP,
				SourcePortRange:          to.StringPtr("*"),
				DestinationPortRanges:    &[]string{"111", "2049"},
				SourceAddressPrefix:      to.StringPtr("[parameters('addressSpace')]"),
				DestinationAddressPrefix: to.StringPtr("*"),
				Access:                   mgmtnetwork.SecurityRuleAccessAllow,
				Priority:                 to.Int32Ptr(120),
				Direction:                mgmtnetwork.SecurityRuleDirectionInbound,
			},
			Name: to.StringPtr("nfs_in"),
		},
	})
}

func (g *generator) clusterNSG() *arm.Resource {
	return g.securityGroup(clusterNSGName, &[]mgmtnetwork.SecurityRule{
		{
			SecurityRulePropertiesFormat: &mgmtnetwork.SecurityRulePropertiesFormat{
				Protocol:                 mgmtnetwork.SecurityRuleProtocolTCP,
				SourcePortRange:          to.StringPtr("*"),
				DestinationPortRange:     to.StringPtr("8787"),
				SourceAddressPrefix:      to.StringPtr("[parameters('gatewaySubnetPrefix')]"),
				DestinationAddressPrefix: to.StringPtr("*"),
				Access:                   mgmtnetwork.SecurityRuleAccessAllow,
				Priority:                 to.Int32Ptr(120),
				Direction:                mgmtnetwork.SecurityRuleDirectionInbound,
			},
			Name: to.StringPtr("rstudio_in"),
		},
	})
}
