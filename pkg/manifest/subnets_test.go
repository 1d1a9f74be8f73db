package manifest

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"testing"
)

func TestSubnets(t *testing.T) {
	m := &Manifest{
		Network: NetworkConfig{AddressSpace: "10.128.0.0/16"},
	}

	plan, err := m.Subnets()
	if err != nil {
		t.Fatal(err)
	}

	for _, tt := range []struct {
		name string
		got  string
		want string
	}{
		{"gateway", plan.Gateway.String(), "10.128.0.0/24"},
		{"directory", plan.Directory.String(), "10.128.1.0/24"},
		{"servers", plan.Servers.String(), "10.128.2.0/24"},
		{"cluster", plan.Cluster.String(), "10.128.3.0/24"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %s, want %s", tt.got, tt.want)
			}
		})
	}
}

func TestSubnetsMinimumSpace(t *testing.T) {
	m := &Manifest{
		Network: NetworkConfig{AddressSpace: "192.168.8.0/21"},
	}

	plan, err := m.Subnets()
	if err != nil {
		t.Fatal(err)
	}

	if plan.Cluster.String() != "192.168.11.0/24" {
		t.Error(plan.Cluster.String())
	}
}

func TestDirectoryIP(t *testing.T) {
	m := &Manifest{
		Network: NetworkConfig{AddressSpace: "10.128.0.0/16"},
	}

	ip, err := m.DirectoryIP()
	if err != nil {
		t.Fatal(err)
	}

	if ip != "10.128.1.4" {
		t.Error(ip)
	}
}
