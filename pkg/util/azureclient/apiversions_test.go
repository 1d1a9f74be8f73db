package azureclient

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"testing"
)

func TestAPIVersion(t *testing.T) {
	for _, tt := range []struct {
		typ  string
		want string
	}{
		{
			typ:  "Microsoft.Network/applicationGateways",
			want: "2020-08-01",
		},
		{
			typ:  "Microsoft.Network/dnsZones/A",
			want: "2018-05-01",
		},
		{
			typ:  "Microsoft.Compute/virtualMachineScaleSets",
			want: "2020-06-01",
		},
		{
			typ:  "Microsoft.Unknown/resourceType",
			want: "",
		},
	} {
		t.Run(tt.typ, func(t *testing.T) {
			got := APIVersion(tt.typ)
			if got != tt.want {
				t.Errorf("%s != %s", got, tt.want)
			}
		})
	}
}
