package env

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// IsLocalDevelopmentMode returns true if the RSCLUSTER_MODE environment
// variable is set to "development"
func IsLocalDevelopmentMode(cfg *viper.Viper) bool {
	return strings.EqualFold(cfg.GetString("RSCLUSTER_MODE"), "development")
}

// ValidateVars iterates over all the elements of vars and returns an error
// naming every variable with an empty value
func ValidateVars(cfg *viper.Viper, vars ...string) error {
	var missing []string

	for _, v := range vars {
		if cfg.GetString(v) == "" {
			missing = append(missing, v)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("environment variable(s) %s unset", strings.Join(missing, ", "))
	}

	return nil
}
