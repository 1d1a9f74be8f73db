package generator

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"bytes"
	"encoding/json"

	"github.com/gofrs/uuid"

	"github.com/miniad/rscluster/pkg/util/arm"
)

const (
	tenantIDHack = "13805ec3-a223-47ad-ad65-8b2baf92c0fb"
)

var (
	tenantUUIDHack = uuid.Must(uuid.FromString(tenantIDHack))
)

// Integer fields of SDK structs cannot carry ARM expressions, so templates are
// generated with magic values which are swapped for parameter references here.
const (
	vmssCapacityHack      = 1338
	shareQuotaHack        = 1336
	dataDiskSizeHack      = 1335
	appGWCapacityHack     = 1334
	scaleOutThresholdHack = 1333
	scaleInThresholdHack  = 1332
)

func (g *generator) templateFixup(t *arm.Template) ([]byte, error) {
	b, err := json.MarshalIndent(t, "", "    ")
	if err != nil {
		return nil, err
	}

	// :-(
	b = bytes.ReplaceAll(b, []byte(tenantIDHack), []byte("[subscription().tenantId]"))
	b = bytes.ReplaceAll(b, []byte(`"capacity": 1338`), []byte(`"capacity": "[parameters('vmssCapacity')]"`))
	b = bytes.ReplaceAll(b, []byte(`"capacity": 1334`), []byte(`"capacity": "[parameters('appGatewayCapacity')]"`))
	b = bytes.ReplaceAll(b, []byte(`"shareQuota": 1336`), []byte(`"shareQuota": "[parameters('shareQuotaGB')]"`))
	b = bytes.ReplaceAll(b, []byte(`"diskSizeGB": 1335`), []byte(`"diskSizeGB": "[parameters('dataDiskSizeGB')]"`))
	b = bytes.ReplaceAll(b, []byte(`"threshold": 1333`), []byte(`"threshold": "[parameters('scaleOutThreshold')]"`))
	b = bytes.ReplaceAll(b, []byte(`"threshold": 1332`), []byte(`"threshold": "[parameters('scaleInThreshold')]"`))

	return append(b, byte('\n')), nil
}

// FixupTemplate returns the template as an ARM-ready document with the magic
// integer values swapped for parameter references.  Deployments must go
// through here, not through a plain marshal of the template.
func FixupTemplate(t *arm.Template) (map[string]interface{}, error) {
	b, err := (&generator{}).templateFixup(t)
	if err != nil {
		return nil, err
	}

	var template map[string]interface{}
	err = json.Unmarshal(b, &template)
	if err != nil {
		return nil, err
	}

	return template, nil
}

func templateStanza() *arm.Template {
	return &arm.Template{
		Schema:         "https://schema.management.azure.com/schemas/2015-01-01/deploymentTemplate.json#",
		ContentVersion: "1.0.0.0",
		Parameters:     map[string]*arm.TemplateParameter{},
	}
}

func parametersStanza() *arm.Parameters {
	return &arm.Parameters{
		Schema:         "https://schema.management.azure.com/schemas/2015-01-01/deploymentParameters.json#",
		ContentVersion: "1.0.0.0",
		Parameters:     map[string]*arm.ParametersParameter{},
	}
}
