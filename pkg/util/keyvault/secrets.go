package keyvault

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
	"github.com/Azure/go-autorest/autorest/to"
	"github.com/sirupsen/logrus"

	"github.com/miniad/rscluster/pkg/util/azureerrors"
)

// Manager manages the secrets the cluster needs in its service Key Vault:
// the Mini-AD administrator and domain-join passwords and the node admin
// password.  Secret values are generated, never supplied, and never logged.
type Manager interface {
	EnsureSecretExists(ctx context.Context, secretName string) error
	GetSecret(ctx context.Context, secretName string) (string, error)
	DeleteSecret(ctx context.Context, secretName string) error
}

type manager struct {
	log     *logrus.Entry
	secrets Client
}

// NewManager creates a new Manager
func NewManager(log *logrus.Entry, secrets Client) Manager {
	return &manager{
		log:     log,
		secrets: secrets,
	}
}

// EnsureSecretExists sets secretName to freshly generated random material,
// but only if the secret does not already exist.  Rerunning a deployment must
// not rotate passwords a domain controller has already been provisioned with.
func (m *manager) EnsureSecretExists(ctx context.Context, secretName string) error {
	_, err := m.secrets.GetSecret(ctx, secretName, "", nil)
	if err == nil {
		return nil
	}
	if !azureerrors.IsNotFoundError(err) {
		return err
	}

	key := make([]byte, 32)
	_, err = rand.Read(key)
	if err != nil {
		return err
	}

	m.log.Infof("setting secret %s", secretName)
	_, err = m.secrets.SetSecret(ctx, secretName, azsecrets.SetSecretParameters{
		Value: to.StringPtr(base64.StdEncoding.EncodeToString(key)),
	}, nil)
	return err
}

func (m *manager) GetSecret(ctx context.Context, secretName string) (string, error) {
	secret, err := m.secrets.GetSecret(ctx, secretName, "", nil)
	if err != nil {
		return "", err
	}

	if secret.Value == nil {
		return "", fmt.Errorf("secret %s has no value", secretName)
	}

	return *secret.Value, nil
}

func (m *manager) DeleteSecret(ctx context.Context, secretName string) error {
	_, err := m.secrets.DeleteSecret(ctx, secretName, nil)
	if azureerrors.IsNotFoundError(err) {
		err = nil
	}

	return err
}
