package keyvault

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"
	"net/http"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
	"github.com/Azure/go-autorest/autorest/to"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

type fakeClient struct {
	values map[string]string
	sets   int
}

var _ Client = &fakeClient{}

func (c *fakeClient) GetSecret(ctx context.Context, name string, version string, options *azsecrets.GetSecretOptions) (azsecrets.GetSecretResponse, error) {
	value, found := c.values[name]
	if !found {
		return azsecrets.GetSecretResponse{}, &azcore.ResponseError{
			StatusCode: http.StatusNotFound,
			ErrorCode:  "SecretNotFound",
		}
	}

	return azsecrets.GetSecretResponse{
		Secret: azsecrets.Secret{
			Value: to.StringPtr(value),
		},
	}, nil
}

func (c *fakeClient) SetSecret(ctx context.Context, name string, parameters azsecrets.SetSecretParameters, options *azsecrets.SetSecretOptions) (azsecrets.SetSecretResponse, error) {
	c.values[name] = *parameters.Value
	c.sets++
	return azsecrets.SetSecretResponse{}, nil
}

func (c *fakeClient) DeleteSecret(ctx context.Context, name string, options *azsecrets.DeleteSecretOptions) (azsecrets.DeleteSecretResponse, error) {
	if _, found := c.values[name]; !found {
		return azsecrets.DeleteSecretResponse{}, &azcore.ResponseError{
			StatusCode: http.StatusNotFound,
			ErrorCode:  "SecretNotFound",
		}
	}

	delete(c.values, name)
	return azsecrets.DeleteSecretResponse{}, nil
}

func (c *fakeClient) NewListSecretPropertiesPager(options *azsecrets.ListSecretPropertiesOptions) *runtime.Pager[azsecrets.ListSecretPropertiesResponse] {
	return nil
}

func TestEnsureSecretExists(t *testing.T) {
	ctx := context.Background()
	logger, _ := logtest.NewNullLogger()

	c := &fakeClient{values: map[string]string{}}
	m := NewManager(logrus.NewEntry(logger), c)

	err := m.EnsureSecretExists(ctx, "domain-admin-password")
	assert.NoError(t, err)
	assert.Equal(t, 1, c.sets)

	generated := c.values["domain-admin-password"]
	assert.NotEmpty(t, generated)

	// a second run must not rotate the secret
	err = m.EnsureSecretExists(ctx, "domain-admin-password")
	assert.NoError(t, err)
	assert.Equal(t, 1, c.sets)
	assert.Equal(t, generated, c.values["domain-admin-password"])
}

func TestGetSecret(t *testing.T) {
	ctx := context.Background()
	logger, _ := logtest.NewNullLogger()

	c := &fakeClient{values: map[string]string{"domain-join-password": "hunter2"}}
	m := NewManager(logrus.NewEntry(logger), c)

	value, err := m.GetSecret(ctx, "domain-join-password")
	assert.NoError(t, err)
	assert.Equal(t, "hunter2", value)

	_, err = m.GetSecret(ctx, "missing")
	assert.Error(t, err)
}

func TestDeleteSecretTolerationOfNotFound(t *testing.T) {
	ctx := context.Background()
	logger, _ := logtest.NewNullLogger()

	c := &fakeClient{values: map[string]string{}}
	m := NewManager(logrus.NewEntry(logger), c)

	assert.NoError(t, m.DeleteSecret(ctx, "never-existed"))
}
