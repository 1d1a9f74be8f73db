package generator

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

// Template artifact file names
const (
	FilePreDeploy        = "rscluster-predeploy.json"
	FileDirectory        = "rscluster-directory.json"
	FileServers          = "rscluster-servers.json"
	FileServersProvision = "rscluster-servers-provision.json"
	FileCluster          = "rscluster-cluster.json"
	FileGallery          = "rscluster-gallery.json"
	FileImage            = "rscluster-image.json"

	filePreDeployParameters        = "rscluster-predeploy-parameters.json"
	fileDirectoryParameters        = "rscluster-directory-parameters.json"
	fileServersParameters          = "rscluster-servers-parameters.json"
	fileServersProvisionParameters = "rscluster-servers-provision-parameters.json"
	fileClusterParameters          = "rscluster-cluster-parameters.json"
	fileGalleryParameters          = "rscluster-gallery-parameters.json"
	fileImageParameters            = "rscluster-image-parameters.json"
)

// Fixed resource names within the cluster resource group.  The phases and the
// provisioner agree on these; nothing is discovered by listing.
const (
	vnetName            = "cluster-vnet"
	gatewaySubnetName   = "gateway-subnet"
	directorySubnetName = "directory-subnet"
	serversSubnetName   = "servers-subnet"
	clusterSubnetName   = "cluster-subnet"

	gatewayNSGName   = "gateway-nsg"
	directoryNSGName = "directory-nsg"
	serversNSGName   = "servers-nsg"
	clusterNSGName   = "cluster-nsg"

	directoryVMName = "directory-vm"
	nfsGatewayName  = "nfsgateway-vm"
	builderVMName   = "image-builder"

	appGatewayName    = "cluster-appgw"
	appGatewayPIPName = "cluster-appgw-pip"
)
