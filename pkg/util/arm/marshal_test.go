package arm

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"encoding/json"
	"testing"

	mgmtnetwork "github.com/Azure/azure-sdk-for-go/services/network/mgmt/2020-08-01/network"
	"github.com/Azure/go-autorest/autorest/to"
	"github.com/google/go-cmp/cmp"
)

func TestResourceMarshal(t *testing.T) {
	for _, tt := range []struct {
		name     string
		resource *Resource
		want     string
	}{
		{
			name: "sdk resource with outer fields merged over",
			resource: &Resource{
				Resource: &mgmtnetwork.PublicIPAddress{
					Sku: &mgmtnetwork.PublicIPAddressSku{
						Name: mgmtnetwork.PublicIPAddressSkuNameStandard,
					},
					PublicIPAddressPropertiesFormat: &mgmtnetwork.PublicIPAddressPropertiesFormat{
						PublicIPAllocationMethod: mgmtnetwork.Static,
					},
					Name:     to.StringPtr("cluster-pip"),
					Type:     to.StringPtr("Microsoft.Network/publicIPAddresses"),
					Location: to.StringPtr("[resourceGroup().location]"),
				},
				APIVersion: "2020-08-01",
				DependsOn: []string{
					"[resourceId('Microsoft.Network/virtualNetworks', 'cluster-vnet')]",
				},
			},
			want: `{
	"apiVersion": "2020-08-01",
	"dependsOn": [
		"[resourceId('Microsoft.Network/virtualNetworks', 'cluster-vnet')]"
	],
	"location": "[resourceGroup().location]",
	"name": "cluster-pip",
	"properties": {
		"publicIPAllocationMethod": "Static"
	},
	"sku": {
		"name": "Standard"
	},
	"type": "Microsoft.Network/publicIPAddresses"
}`,
		},
		{
			name: "sdk marshaller dropped so readonly fields survive",
			resource: &Resource{
				Resource: &mgmtnetwork.Subnet{
					SubnetPropertiesFormat: &mgmtnetwork.SubnetPropertiesFormat{
						AddressPrefix: to.StringPtr("10.128.2.0/24"),
					},
					Name: to.StringPtr("servers-subnet"),
				},
				APIVersion: "2020-08-01",
			},
			want: `{
	"apiVersion": "2020-08-01",
	"name": "servers-subnet",
	"properties": {
		"addressPrefix": "10.128.2.0/24"
	}
}`,
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(tt.resource)
			if err != nil {
				t.Fatal(err)
			}

			var got, want interface{}
			if err := json.Unmarshal(b, &got); err != nil {
				t.Fatal(err)
			}
			if err := json.Unmarshal([]byte(tt.want), &want); err != nil {
				t.Fatal(err)
			}

			if diff := cmp.Diff(want, got); diff != "" {
				t.Error(diff)
			}
		})
	}
}

func TestResourceUnmarshal(t *testing.T) {
	err := (&Resource{}).UnmarshalJSON(nil)
	if err == nil || err.Error() != "not implemented" {
		t.Error(err)
	}
}
