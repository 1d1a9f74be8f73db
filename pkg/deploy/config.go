package deploy

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"fmt"
	"os"
	"reflect"

	"github.com/ghodss/yaml"
)

// Config represents the configuration file for the provisioning tooling: the
// shared settings plus one entry per target environment.
type Config struct {
	Environments  []EnvironmentConfig `json:"environments"`
	Configuration *Configuration      `json:"configuration"`
}

// EnvironmentConfig represents one target environment of a cluster
type EnvironmentConfig struct {
	// Name is the unique identifier of the environment
	Name              string         `json:"name"`
	SubscriptionID    string         `json:"subscriptionId"`
	ResourceGroupName string         `json:"resourceGroupName"`
	Configuration     *Configuration `json:"configuration"`
}

// Configuration represents the settings which vary per subscription rather
// than per cluster.  All fields are nilable so that mergeConfig can tell
// unset from zero.
type Configuration struct {
	AdminUsername            string  `json:"adminUsername,omitempty"`
	KeyvaultName             *string `json:"keyvaultName,omitempty"`
	StorageAccountName       *string `json:"storageAccountName,omitempty"`
	DNSZoneResourceGroupName *string `json:"dnsZoneResourceGroupName,omitempty"`
	DeployServicePrincipalID *string `json:"deployServicePrincipalId,omitempty"`
}

// GetConfig returns the merged configuration of one environment from the file
func GetConfig(name, path string) (*EnvironmentConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config *Config
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, err
	}

	for _, c := range config.Environments {
		if c.Name == name {
			if c.Configuration == nil {
				c.Configuration = &Configuration{}
			}
			if config.Configuration == nil {
				config.Configuration = &Configuration{}
			}

			configuration, err := mergeConfig(c.Configuration, config.Configuration)
			if err != nil {
				return nil, err
			}

			c.Configuration = configuration
			return &c, nil
		}
	}

	return nil, fmt.Errorf("environment %s not found in %s", name, path)
}

// mergeConfig merges two Configuration structs, where primary input takes
// priority over secondary
func mergeConfig(primary, secondary *Configuration) (*Configuration, error) {
	if primary == nil || secondary == nil {
		return nil, fmt.Errorf("inputs can't be nil")
	}

	sValues := reflect.Indirect(reflect.ValueOf(secondary))
	pValues := reflect.Indirect(reflect.ValueOf(primary))

	for i := 0; i < pValues.NumField(); i++ {
		if pValues.Field(i).IsZero() {
			pValues.Field(i).Set(sValues.Field(i))
		}
	}

	return primary, nil
}

func (config *EnvironmentConfig) validate() error {
	if config.SubscriptionID == "" {
		return fmt.Errorf("environment %s: subscriptionId is required", config.Name)
	}
	if config.ResourceGroupName == "" {
		return fmt.Errorf("environment %s: resourceGroupName is required", config.Name)
	}

	c := config.Configuration

	var missing []string
	for _, required := range []struct {
		name  string
		value *string
	}{
		{"keyvaultName", c.KeyvaultName},
		{"storageAccountName", c.StorageAccountName},
		{"deployServicePrincipalId", c.DeployServicePrincipalID},
	} {
		if required.value == nil || *required.value == "" {
			missing = append(missing, required.name)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("configuration has missing fields: %v", missing)
	}

	if c.AdminUsername == "" {
		c.AdminUsername = "rsadmin"
	}

	return nil
}
