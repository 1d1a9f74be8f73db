package manifest

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"strings"
	"testing"
)

const validManifest = `
cluster "prod" {
  location = "eastus"
  dns_zone = "example.com"
}

domain {
  realm        = "CLUSTER.EXAMPLE.COM"
  netbios_name = "CLUSTER"
}

network {
  address_space = "10.128.0.0/16"
}

directory {}

servers {}

image {}

scaling {
  min_capacity     = 1
  default_capacity = 2
  max_capacity     = 6
}
`

func TestLoadDefaults(t *testing.T) {
	m, err := LoadBytes([]byte(validManifest), "cluster.hcl")
	if err != nil {
		t.Fatal(err)
	}

	for _, tt := range []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{"cluster name", m.Cluster.Name, "prod"},
		{"domain admin", m.Domain.AdminUsername, "domainadmin"},
		{"directory vm size", m.Directory.VMSize, "Standard_D2s_v3"},
		{"directory data disk", m.Directory.DataDiskSizeGB, int32(64)},
		{"share name", m.Servers.ShareName, "clusterhome"},
		{"share quota", m.Servers.ShareQuotaGB, int32(1024)},
		{"image publisher", m.Image.Publisher, "Canonical"},
		{"image gallery", m.Image.GalleryName, "prodgallery"},
		{"image definition", m.Image.ImageDefinition, "rstudio-server"},
		{"scaling vm size", m.Scaling.VMSize, "Standard_D4s_v3"},
		{"gateway capacity", m.Scaling.GatewayCapacity, int32(2)},
		{"scale out threshold", m.Scaling.ScaleOutCPUPercent, int64(75)},
		{"scale in threshold", m.Scaling.ScaleInCPUPercent, int64(25)},
		{"validate retries", m.Validate.Retries, 30},
		{"validate interval", m.Validate.IntervalSeconds, int64(10)},
	} {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestLoadValidation(t *testing.T) {
	for _, tt := range []struct {
		name    string
		mutate  func(string) string
		wantErr string
	}{
		{
			name: "valid",
			mutate: func(s string) string {
				return s
			},
		},
		{
			name: "missing location",
			mutate: func(s string) string {
				return strings.Replace(s, `  location = "eastus"`+"\n", "", 1)
			},
			wantErr: "Missing required argument",
		},
		{
			name: "missing realm",
			mutate: func(s string) string {
				return strings.Replace(s, `  realm        = "CLUSTER.EXAMPLE.COM"`+"\n", "", 1)
			},
			wantErr: "Missing required argument",
		},
		{
			name: "netbios name too long",
			mutate: func(s string) string {
				return strings.Replace(s, `"CLUSTER"`, `"AVERYLONGNETBIOSNAME"`, 1)
			},
			wantErr: `domain: netbios_name "AVERYLONGNETBIOSNAME" exceeds 15 characters`,
		},
		{
			name: "invalid address space",
			mutate: func(s string) string {
				return strings.Replace(s, "10.128.0.0/16", "bogus", 1)
			},
			wantErr: `network: address_space "bogus" is not a valid CIDR`,
		},
		{
			name: "address space too small",
			mutate: func(s string) string {
				return strings.Replace(s, "10.128.0.0/16", "10.128.0.0/24", 1)
			},
			wantErr: `network: address_space "10.128.0.0/24" must be /21 or larger`,
		},
		{
			name: "zero min capacity",
			mutate: func(s string) string {
				return strings.Replace(s, "min_capacity     = 1", "min_capacity     = 0", 1)
			},
			wantErr: "scaling: min_capacity must be at least 1",
		},
		{
			name: "unordered capacities",
			mutate: func(s string) string {
				return strings.Replace(s, "default_capacity = 2", "default_capacity = 8", 1)
			},
			wantErr: "scaling: want min_capacity <= default_capacity <= max_capacity, got 1/8/6",
		},
		{
			name: "unordered thresholds",
			mutate: func(s string) string {
				return strings.Replace(s, "max_capacity     = 6", "max_capacity     = 6\n  scale_in_cpu_percent = 90", 1)
			},
			wantErr: "scaling: scale_in_cpu_percent 90 must be below scale_out_cpu_percent 75",
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadBytes([]byte(tt.mutate(validManifest)), "cluster.hcl")
			if tt.wantErr == "" {
				if err != nil {
					t.Fatal(err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("got %v, want %s", err, tt.wantErr)
			}
		})
	}
}

func TestEnvInterpolation(t *testing.T) {
	t.Setenv("RSCLUSTER_TEST_ZONE", "interp.example.com")

	m, err := LoadBytes([]byte(strings.Replace(validManifest, `"example.com"`, "env.RSCLUSTER_TEST_ZONE", 1)), "cluster.hcl")
	if err != nil {
		t.Fatal(err)
	}

	if m.Cluster.DNSZoneName != "interp.example.com" {
		t.Error(m.Cluster.DNSZoneName)
	}
}
