package azureclient

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"strings"
)

// keys must be lower case
var apiVersions = map[string]string{
	"microsoft.compute":           "2020-06-01",
	"microsoft.compute/galleries": "2019-12-01",
	"microsoft.insights":          "2018-03-01",
	"microsoft.keyvault":          "2019-09-01",
	"microsoft.managedidentity":   "2018-11-30",
	"microsoft.network":           "2020-08-01",
	"microsoft.network/dnszones":  "2018-05-01",
	"microsoft.storage":           "2019-06-01",
}

// APIVersion gets the APIVersion from a full resource type
func APIVersion(typ string) string {
	t := strings.ToLower(typ)

	for {
		if apiVersion, ok := apiVersions[t]; ok {
			return apiVersion
		}

		i := strings.LastIndexByte(t, '/')
		if i == -1 {
			break
		}

		t = t[:i]
	}

	return ""
}
