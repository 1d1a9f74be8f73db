package health

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	mgmtnetwork "github.com/Azure/azure-sdk-for-go/services/network/mgmt/2020-08-01/network"
	"github.com/Azure/go-autorest/autorest/to"
	"github.com/sirupsen/logrus"

	"github.com/miniad/rscluster/pkg/util/azureclient/mgmt/network"
)

type fakeAppGatewaysClient struct {
	network.ApplicationGatewaysClient

	serverHealth []mgmtnetwork.ApplicationGatewayBackendHealthServerHealth
}

func (c *fakeAppGatewaysClient) BackendHealthAndWait(ctx context.Context, resourceGroupName, applicationGatewayName, expand string) (mgmtnetwork.ApplicationGatewayBackendHealth, error) {
	servers := make([]mgmtnetwork.ApplicationGatewayBackendHealthServer, 0, len(c.serverHealth))
	for i, health := range c.serverHealth {
		servers = append(servers, mgmtnetwork.ApplicationGatewayBackendHealthServer{
			Address: to.StringPtr(string(rune('a' + i))),
			Health:  health,
		})
	}

	return mgmtnetwork.ApplicationGatewayBackendHealth{
		BackendAddressPools: &[]mgmtnetwork.ApplicationGatewayBackendHealthPool{
			{
				BackendHTTPSettingsCollection: &[]mgmtnetwork.ApplicationGatewayBackendHealthHTTPSettings{
					{
						Servers: &servers,
					},
				},
			},
		},
	}, nil
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	for _, tt := range []struct {
		name         string
		serverHealth []mgmtnetwork.ApplicationGatewayBackendHealthServerHealth
		statusCode   int
		wantErr      bool
	}{
		{
			name:         "healthy",
			serverHealth: []mgmtnetwork.ApplicationGatewayBackendHealthServerHealth{mgmtnetwork.Up, mgmtnetwork.Up},
			statusCode:   http.StatusOK,
		},
		{
			name:         "unhealthy backend",
			serverHealth: []mgmtnetwork.ApplicationGatewayBackendHealthServerHealth{mgmtnetwork.Up, mgmtnetwork.Down},
			statusCode:   http.StatusOK,
			wantErr:      true,
		},
		{
			name:         "draining backend",
			serverHealth: []mgmtnetwork.ApplicationGatewayBackendHealthServerHealth{mgmtnetwork.Up, mgmtnetwork.Draining},
			statusCode:   http.StatusOK,
			wantErr:      true,
		},
		{
			name:       "no backends",
			statusCode: http.StatusOK,
			wantErr:    true,
		},
		{
			name:         "endpoint unhealthy",
			serverHealth: []mgmtnetwork.ApplicationGatewayBackendHealthServerHealth{mgmtnetwork.Up},
			statusCode:   http.StatusServiceUnavailable,
			wantErr:      true,
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/health-check" {
					t.Error(r.URL.Path)
				}
				w.WriteHeader(tt.statusCode)
			}))
			defer srv.Close()

			c := &checker{
				log:         logrus.NewEntry(logrus.StandardLogger()),
				appgateways: &fakeAppGatewaysClient{serverHealth: tt.serverHealth},
				httpClient:  srv.Client(),

				resourceGroupName: "test-rg",
				gatewayName:       "cluster-appgw",
				endpoint:          srv.URL + "/health-check",
				retries:           2,
				interval:          10 * time.Millisecond,
			}

			err := c.Validate(ctx)
			if (err != nil) != tt.wantErr {
				t.Error(err)
			}
		})
	}
}
