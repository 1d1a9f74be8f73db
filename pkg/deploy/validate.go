package deploy

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"
	"fmt"
	"time"

	"github.com/miniad/rscluster/pkg/health"
)

// ValidateCluster polls the deployed cluster until the application gateway
// reports all scale set instances healthy and the health check endpoint
// answers, within the manifest's attempt budget.
func (p *provisioner) ValidateCluster(ctx context.Context) error {
	ip, err := p.gatewayPublicIP(ctx)
	if err != nil {
		return err
	}

	checker := health.NewChecker(p.log, p.appgateways, p.config.ResourceGroupName, "cluster-appgw", fmt.Sprintf("http://%s/health-check", ip), p.manifest.Validate.Retries, time.Duration(p.manifest.Validate.IntervalSeconds)*time.Second)

	return checker.Validate(ctx)
}
