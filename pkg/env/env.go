package env

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/go-autorest/autorest"
	"github.com/Azure/go-autorest/autorest/adal"
	"github.com/Azure/go-autorest/autorest/azure/auth"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/miniad/rscluster/pkg/util/azureclient"
	"github.com/miniad/rscluster/pkg/util/refreshable"
)

// Secret names in the service Key Vault.  The provisioner generates these and
// the provisioning scripts consume them; nothing else may mint AD passwords.
const (
	DomainAdminSecretName = "domain-admin-password"
	DomainJoinSecretName  = "domain-join-password"
	NodeAdminSecretName   = "node-admin-password"
)

// Core collects basic configuration information which every subcommand needs:
// the target cloud environment and credentials taken from the process
// environment (AZURE_TENANT_ID, AZURE_CLIENT_ID, AZURE_CLIENT_SECRET).
type Core interface {
	Environment() *azureclient.Environment
	IsLocalDevelopmentMode() bool
	Logger() *logrus.Entry

	NewAuthorizer() (autorest.Authorizer, error)
	NewRefreshableAuthorizer() (refreshable.Authorizer, error)
	NewTokenCredential() (azcore.TokenCredential, error)

	GetEnv(string) string
	ValidateVars(...string) error
}

type core struct {
	environment *azureclient.Environment

	cfg *viper.Viper

	isLocalDevelopmentMode bool
	log                    *logrus.Entry
}

// NewCore creates a new Core from the process environment
func NewCore(log *logrus.Entry) (Core, error) {
	cfg := viper.New()
	cfg.AutomaticEnv()

	environment, err := azureclient.EnvironmentFromName(cfg.GetString("AZURE_ENVIRONMENT"))
	if err != nil {
		return nil, err
	}

	isLocalDevelopmentMode := IsLocalDevelopmentMode(cfg)
	if isLocalDevelopmentMode {
		log.Warn("running in development mode")
	}

	return &core{
		environment:            environment,
		cfg:                    cfg,
		isLocalDevelopmentMode: isLocalDevelopmentMode,
		log:                    log,
	}, nil
}

func (c *core) Environment() *azureclient.Environment {
	return c.environment
}

func (c *core) IsLocalDevelopmentMode() bool {
	return c.isLocalDevelopmentMode
}

func (c *core) Logger() *logrus.Entry {
	return c.log
}

func (c *core) GetEnv(name string) string {
	return c.cfg.GetString(name)
}

func (c *core) ValidateVars(vars ...string) error {
	return ValidateVars(c.cfg, vars...)
}

// NewAuthorizer returns an ARM authorizer from the process environment: a
// service principal when AZURE_CLIENT_SECRET is set, CLI credentials in
// development mode otherwise.
func (c *core) NewAuthorizer() (autorest.Authorizer, error) {
	if c.isLocalDevelopmentMode && c.GetEnv("AZURE_CLIENT_SECRET") == "" {
		return auth.NewAuthorizerFromCLIWithResource(c.environment.ResourceManagerEndpoint)
	}

	return auth.NewAuthorizerFromEnvironment()
}

// NewRefreshableAuthorizer returns an authorizer whose underlying service
// principal token can be refreshed mid-run, for steps which must ride out AAD
// and ARM role-assignment propagation delays.
func (c *core) NewRefreshableAuthorizer() (refreshable.Authorizer, error) {
	err := c.ValidateVars("AZURE_TENANT_ID", "AZURE_CLIENT_ID", "AZURE_CLIENT_SECRET")
	if err != nil {
		return nil, err
	}

	oauthConfig, err := adal.NewOAuthConfig(c.environment.ActiveDirectoryEndpoint, c.GetEnv("AZURE_TENANT_ID"))
	if err != nil {
		return nil, err
	}

	sp, err := adal.NewServicePrincipalToken(*oauthConfig, c.GetEnv("AZURE_CLIENT_ID"), c.GetEnv("AZURE_CLIENT_SECRET"), c.environment.ResourceManagerEndpoint)
	if err != nil {
		return nil, err
	}

	return refreshable.NewAuthorizer(sp), nil
}

// NewTokenCredential returns a track-2 credential for dataplane clients
func (c *core) NewTokenCredential() (azcore.TokenCredential, error) {
	return azidentity.NewDefaultAzureCredential(&azidentity.DefaultAzureCredentialOptions{
		ClientOptions: azcore.ClientOptions{
			Cloud: c.environment.Cloud,
		},
	})
}
