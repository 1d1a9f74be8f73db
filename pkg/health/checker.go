package health

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"
	"fmt"
	"net/http"
	"time"

	mgmtnetwork "github.com/Azure/azure-sdk-for-go/services/network/mgmt/2020-08-01/network"
	"github.com/sirupsen/logrus"
	"k8s.io/apimachinery/pkg/util/wait"

	"github.com/miniad/rscluster/pkg/util/azureclient/mgmt/network"
)

// Checker validates a deployed cluster end to end: every scale set instance
// behind the application gateway must report healthy, and the gateway itself
// must serve the RStudio health check.
type Checker interface {
	Validate(ctx context.Context) error
}

type checker struct {
	log         *logrus.Entry
	appgateways network.ApplicationGatewaysClient
	httpClient  *http.Client

	resourceGroupName string
	gatewayName       string
	endpoint          string
	retries           int
	interval          time.Duration
}

func NewChecker(log *logrus.Entry, appgateways network.ApplicationGatewaysClient, resourceGroupName, gatewayName, endpoint string, retries int, interval time.Duration) Checker {
	return &checker{
		log:         log,
		appgateways: appgateways,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},

		resourceGroupName: resourceGroupName,
		gatewayName:       gatewayName,
		endpoint:          endpoint,
		retries:           retries,
		interval:          interval,
	}
}

// Validate polls until the cluster is serving or the attempt budget runs out.
// A cluster node is only healthy once it has joined the domain, mounted the
// home share and started RStudio, so this is the signal that a deployment
// actually converged.
func (c *checker) Validate(ctx context.Context) error {
	err := wait.PollUntilContextTimeout(ctx, c.interval, time.Duration(c.retries)*c.interval, true, func(pollCtx context.Context) (bool, error) {
		healthy, err := c.backendsHealthy(pollCtx)
		if err != nil {
			c.log.Warn(err)
			return false, nil
		}
		if !healthy {
			return false, nil
		}

		return c.endpointHealthy(pollCtx)
	})
	if err != nil {
		return fmt.Errorf("cluster failed validation after %d attempts: %w", c.retries, err)
	}

	c.log.Printf("cluster is healthy at %s", c.endpoint)
	return nil
}

// backendsHealthy returns true when the gateway reports at least one backend
// server and all of them are healthy
func (c *checker) backendsHealthy(ctx context.Context) (bool, error) {
	backendHealth, err := c.appgateways.BackendHealthAndWait(ctx, c.resourceGroupName, c.gatewayName, "")
	if err != nil {
		return false, err
	}

	if backendHealth.BackendAddressPools == nil {
		return false, nil
	}

	servers := 0
	for _, pool := range *backendHealth.BackendAddressPools {
		if pool.BackendHTTPSettingsCollection == nil {
			continue
		}
		for _, settings := range *pool.BackendHTTPSettingsCollection {
			if settings.Servers == nil {
				continue
			}
			for _, server := range *settings.Servers {
				servers++
				if server.Health != mgmtnetwork.Up {
					c.log.Printf("backend %s is %s", safeAddress(server), server.Health)
					return false, nil
				}
			}
		}
	}

	return servers > 0, nil
}

func (c *checker) endpointHealthy(ctx context.Context) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return false, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn(err)
		return false, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Printf("%s returned %s", c.endpoint, resp.Status)
		return false, nil
	}

	return true, nil
}

func safeAddress(server mgmtnetwork.ApplicationGatewayBackendHealthServer) string {
	if server.Address != nil {
		return *server.Address
	}
	return "<unknown>"
}
