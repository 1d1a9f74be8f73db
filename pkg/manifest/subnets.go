package manifest

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"fmt"
	"net"

	"github.com/apparentlymart/go-cidr/cidr"
)

// SubnetPlan is the fixed carve-up of the cluster address space.  Every phase
// derives addresses from the manifest the same way, so there is no subnet
// state to hand from one phase to the next.
type SubnetPlan struct {
	AddressSpace *net.IPNet

	Gateway   *net.IPNet
	Directory *net.IPNet
	Servers   *net.IPNet
	Cluster   *net.IPNet
}

// Subnets returns the four /24 subnets of the cluster in their fixed order:
// gateway, directory, servers, cluster.
func (m *Manifest) Subnets() (*SubnetPlan, error) {
	_, space, err := net.ParseCIDR(m.Network.AddressSpace)
	if err != nil {
		return nil, fmt.Errorf("network: address_space %q is not a valid CIDR", m.Network.AddressSpace)
	}

	ones, bits := space.Mask.Size()
	if bits != 32 {
		return nil, fmt.Errorf("network: address_space %q must be IPv4", m.Network.AddressSpace)
	}
	if ones > 21 {
		return nil, fmt.Errorf("network: address_space %q must be /21 or larger", m.Network.AddressSpace)
	}

	plan := &SubnetPlan{AddressSpace: space}

	for i, subnet := range []**net.IPNet{
		&plan.Gateway,
		&plan.Directory,
		&plan.Servers,
		&plan.Cluster,
	} {
		*subnet, err = cidr.Subnet(space, 24-ones, i)
		if err != nil {
			return nil, err
		}
	}

	return plan, nil
}

// DirectoryIP returns the static private IP of the domain controller: the
// first usable host in the directory subnet after the three addresses Azure
// reserves.
func (m *Manifest) DirectoryIP() (string, error) {
	plan, err := m.Subnets()
	if err != nil {
		return "", err
	}

	ip, err := cidr.Host(plan.Directory, 4)
	if err != nil {
		return "", err
	}

	return ip.String(), nil
}
