package manifest

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// Manifest is the declarative definition of one RStudio cluster: the
// counterpart of the original Terraform variable files.  It is decoded from a
// single .hcl file; everything the phases need which is not an environment
// secret or an Azure discovery comes from here.
type Manifest struct {
	Cluster   ClusterConfig   `hcl:"cluster,block"`
	Domain    DomainConfig    `hcl:"domain,block"`
	Network   NetworkConfig   `hcl:"network,block"`
	Directory DirectoryConfig `hcl:"directory,block"`
	Servers   ServersConfig   `hcl:"servers,block"`
	Image     ImageConfig     `hcl:"image,block"`
	Scaling   ScalingConfig   `hcl:"scaling,block"`
	Validate  *ValidateConfig `hcl:"validate,block"`
}

type ClusterConfig struct {
	Name     string `hcl:"name,label"`
	Location string `hcl:"location"`
	// DNSZoneName is the public zone the cluster A record is created in
	DNSZoneName string `hcl:"dns_zone"`
}

type DomainConfig struct {
	// Realm is the AD realm served by the Mini-AD domain controller,
	// e.g. CLUSTER.EXAMPLE.COM
	Realm         string `hcl:"realm"`
	NetbiosName   string `hcl:"netbios_name"`
	AdminUsername string `hcl:"admin_username,optional"`
}

type NetworkConfig struct {
	AddressSpace string `hcl:"address_space"`
}

type DirectoryConfig struct {
	VMSize         string `hcl:"vm_size,optional"`
	DataDiskSizeGB int32  `hcl:"data_disk_size_gb,optional"`
}

type ServersConfig struct {
	VMSize       string `hcl:"vm_size,optional"`
	ShareName    string `hcl:"share_name,optional"`
	ShareQuotaGB int32  `hcl:"share_quota_gb,optional"`
}

type ImageConfig struct {
	BuilderVMSize   string `hcl:"builder_vm_size,optional"`
	Publisher       string `hcl:"publisher,optional"`
	Offer           string `hcl:"offer,optional"`
	SKU             string `hcl:"sku,optional"`
	Version         string `hcl:"version,optional"`
	GalleryName     string `hcl:"gallery_name,optional"`
	ImageDefinition string `hcl:"image_definition,optional"`
	VersionName     string `hcl:"version_name,optional"`
	RStudioVersion  string `hcl:"rstudio_version,optional"`
	// SourceImageID pins an existing image and skips the build phase
	SourceImageID string `hcl:"source_image_id,optional"`
}

type ScalingConfig struct {
	VMSize             string `hcl:"vm_size,optional"`
	GatewayCapacity    int32  `hcl:"gateway_capacity,optional"`
	MinCapacity        int64  `hcl:"min_capacity"`
	DefaultCapacity    int64  `hcl:"default_capacity"`
	MaxCapacity        int64  `hcl:"max_capacity"`
	ScaleOutCPUPercent int64  `hcl:"scale_out_cpu_percent,optional"`
	ScaleInCPUPercent  int64  `hcl:"scale_in_cpu_percent,optional"`
}

type ValidateConfig struct {
	Retries         int   `hcl:"retries,optional"`
	IntervalSeconds int64 `hcl:"interval_seconds,optional"`
}

// Load parses and validates the cluster manifest at path.  Attribute values
// may reference process environment variables as env.NAME.
func Load(path string) (*Manifest, error) {
	parser := hclparse.NewParser()

	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing %s: %s", path, diags.Error())
	}

	return decode(file.Body, path)
}

// LoadBytes is Load for in-memory manifests, used by tests
func LoadBytes(b []byte, filename string) (*Manifest, error) {
	parser := hclparse.NewParser()

	file, diags := parser.ParseHCL(b, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing %s: %s", filename, diags.Error())
	}

	return decode(file.Body, filename)
}

func decode(body hcl.Body, filename string) (*Manifest, error) {
	var m Manifest

	diags := gohcl.DecodeBody(body, evalContext(), &m)
	if diags.HasErrors() {
		return nil, fmt.Errorf("decoding %s: %s", filename, diags.Error())
	}

	m.applyDefaults()

	err := m.validate()
	if err != nil {
		return nil, err
	}

	return &m, nil
}

// evalContext exposes the process environment to the manifest as env.NAME, so
// per-operator values (e.g. an SSH key path) need not be hardcoded in it
func evalContext() *hcl.EvalContext {
	vars := map[string]cty.Value{}
	for _, kv := range os.Environ() {
		k, v, found := strings.Cut(kv, "=")
		if found && k != "" {
			vars[k] = cty.StringVal(v)
		}
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(vars),
		},
	}
}

func (m *Manifest) applyDefaults() {
	if m.Domain.AdminUsername == "" {
		m.Domain.AdminUsername = "domainadmin"
	}
	if m.Directory.VMSize == "" {
		m.Directory.VMSize = "Standard_D2s_v3"
	}
	if m.Directory.DataDiskSizeGB == 0 {
		m.Directory.DataDiskSizeGB = 64
	}
	if m.Servers.VMSize == "" {
		m.Servers.VMSize = "Standard_D2s_v3"
	}
	if m.Servers.ShareName == "" {
		m.Servers.ShareName = "clusterhome"
	}
	if m.Servers.ShareQuotaGB == 0 {
		m.Servers.ShareQuotaGB = 1024
	}
	if m.Image.BuilderVMSize == "" {
		m.Image.BuilderVMSize = "Standard_D2s_v3"
	}
	if m.Image.Publisher == "" {
		m.Image.Publisher = "Canonical"
	}
	if m.Image.Offer == "" {
		m.Image.Offer = "0001-com-ubuntu-server-jammy"
	}
	if m.Image.SKU == "" {
		m.Image.SKU = "22_04-lts-gen2"
	}
	if m.Image.Version == "" {
		m.Image.Version = "latest"
	}
	if m.Image.GalleryName == "" {
		m.Image.GalleryName = strings.ReplaceAll(m.Cluster.Name, "-", "") + "gallery"
	}
	if m.Image.ImageDefinition == "" {
		m.Image.ImageDefinition = "rstudio-server"
	}
	if m.Image.VersionName == "" {
		m.Image.VersionName = "1.0.0"
	}
	if m.Image.RStudioVersion == "" {
		m.Image.RStudioVersion = "2024.04.2-764"
	}
	if m.Scaling.VMSize == "" {
		m.Scaling.VMSize = "Standard_D4s_v3"
	}
	if m.Scaling.GatewayCapacity == 0 {
		m.Scaling.GatewayCapacity = 2
	}
	if m.Scaling.ScaleOutCPUPercent == 0 {
		m.Scaling.ScaleOutCPUPercent = 75
	}
	if m.Scaling.ScaleInCPUPercent == 0 {
		m.Scaling.ScaleInCPUPercent = 25
	}
	if m.Validate == nil {
		m.Validate = &ValidateConfig{}
	}
	if m.Validate.Retries == 0 {
		m.Validate.Retries = 30
	}
	if m.Validate.IntervalSeconds == 0 {
		m.Validate.IntervalSeconds = 10
	}
}

func (m *Manifest) validate() error {
	if m.Cluster.Name == "" {
		return fmt.Errorf("cluster: a name label is required")
	}
	if m.Cluster.Location == "" {
		return fmt.Errorf("cluster %s: location is required", m.Cluster.Name)
	}
	if m.Cluster.DNSZoneName == "" {
		return fmt.Errorf("cluster %s: dns_zone is required", m.Cluster.Name)
	}
	if m.Domain.Realm == "" {
		return fmt.Errorf("domain: realm is required")
	}
	if m.Domain.NetbiosName == "" {
		return fmt.Errorf("domain: netbios_name is required")
	}
	if len(m.Domain.NetbiosName) > 15 {
		return fmt.Errorf("domain: netbios_name %q exceeds 15 characters", m.Domain.NetbiosName)
	}

	_, err := m.Subnets()
	if err != nil {
		return err
	}

	s := m.Scaling
	if s.MinCapacity < 1 {
		return fmt.Errorf("scaling: min_capacity must be at least 1")
	}
	if s.MinCapacity > s.DefaultCapacity || s.DefaultCapacity > s.MaxCapacity {
		return fmt.Errorf("scaling: want min_capacity <= default_capacity <= max_capacity, got %d/%d/%d", s.MinCapacity, s.DefaultCapacity, s.MaxCapacity)
	}
	if s.ScaleInCPUPercent >= s.ScaleOutCPUPercent {
		return fmt.Errorf("scaling: scale_in_cpu_percent %d must be below scale_out_cpu_percent %d", s.ScaleInCPUPercent, s.ScaleOutCPUPercent)
	}

	return nil
}
