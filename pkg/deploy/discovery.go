package deploy

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"
	"fmt"

	"github.com/miniad/rscluster/pkg/util/azureerrors"
)

// Deployment names, which double as the discovery keys: later phases read the
// outputs of earlier phases' deployments back from ARM.
const (
	deploymentPreDeploy        = "rscluster-predeploy"
	deploymentDirectory        = "rscluster-directory"
	deploymentServers          = "rscluster-servers"
	deploymentServersProvision = "rscluster-servers-provision"
	deploymentGallery          = "rscluster-gallery"
	deploymentImage            = "rscluster-image"
	deploymentCluster          = "rscluster-cluster"
)

// deploymentOutput reads one string output of a completed deployment
func (p *provisioner) deploymentOutput(ctx context.Context, deploymentName, key string) (string, error) {
	deployment, err := p.deployments.Get(ctx, p.config.ResourceGroupName, deploymentName)
	if err != nil {
		return "", err
	}

	outputs, ok := deployment.Properties.Outputs.(map[string]interface{})
	if !ok {
		return "", nil
	}

	output, ok := outputs[key].(map[string]interface{})
	if !ok {
		return "", nil
	}

	value, _ := output["value"].(string)
	return value, nil
}

// directoryIP returns the domain controller's private address, preferring the
// directory deployment's output and falling back to the live NIC.  The
// returned address is never empty: later phases would otherwise bake an empty
// nameserver into their scripts.
func (p *provisioner) directoryIP(ctx context.Context) (string, error) {
	ip, err := p.deploymentOutput(ctx, deploymentDirectory, "directoryIp")
	if err != nil && !azureerrors.IsNotFoundError(err) {
		return "", err
	}

	if ip == "" {
		nic, err := p.interfaces.Get(ctx, p.config.ResourceGroupName, "directory-vm-nic", "")
		if err != nil && !azureerrors.IsNotFoundError(err) {
			return "", err
		}

		if err == nil && nic.InterfacePropertiesFormat != nil && nic.IPConfigurations != nil {
			for _, ipconfig := range *nic.IPConfigurations {
				if ipconfig.PrivateIPAddress != nil {
					ip = *ipconfig.PrivateIPAddress
					break
				}
			}
		}
	}

	if ip == "" {
		return "", fmt.Errorf("directory private IP not found: deploy the directory phase first")
	}

	return ip, nil
}

// nfsGatewayIP returns the NFS gateway's private address, by deployment
// output or live NIC
func (p *provisioner) nfsGatewayIP(ctx context.Context) (string, error) {
	ip, err := p.deploymentOutput(ctx, deploymentServers, "nfsGatewayIp")
	if err != nil && !azureerrors.IsNotFoundError(err) {
		return "", err
	}

	if ip == "" {
		nic, err := p.interfaces.Get(ctx, p.config.ResourceGroupName, "nfsgateway-vm-nic", "")
		if err != nil && !azureerrors.IsNotFoundError(err) {
			return "", err
		}

		if err == nil && nic.InterfacePropertiesFormat != nil && nic.IPConfigurations != nil {
			for _, ipconfig := range *nic.IPConfigurations {
				if ipconfig.PrivateIPAddress != nil {
					ip = *ipconfig.PrivateIPAddress
					break
				}
			}
		}
	}

	if ip == "" {
		return "", fmt.Errorf("NFS gateway private IP not found: deploy the servers phase first")
	}

	return ip, nil
}

// gatewayPublicIP returns the application gateway's public address from the
// live public IP resource
func (p *provisioner) gatewayPublicIP(ctx context.Context) (string, error) {
	pip, err := p.publicipaddresses.Get(ctx, p.config.ResourceGroupName, "cluster-appgw-pip", "")
	if err != nil {
		if azureerrors.IsNotFoundError(err) {
			return "", fmt.Errorf("application gateway public IP not found: deploy the cluster phase first")
		}
		return "", err
	}

	if pip.PublicIPAddressPropertiesFormat == nil || pip.IPAddress == nil || *pip.IPAddress == "" {
		return "", fmt.Errorf("application gateway public IP is not yet allocated")
	}

	return *pip.IPAddress, nil
}
