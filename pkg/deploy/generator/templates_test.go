package generator

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"regexp"
	"strings"
	"testing"

	"github.com/miniad/rscluster/pkg/util/arm"
)

var parameterRefRe = regexp.MustCompile(`parameters\('([a-zA-Z]+)'\)`)

func TestPhaseTemplateParameterRefs(t *testing.T) {
	g := &generator{}

	for _, tt := range []struct {
		name        string
		template    func() *arm.Template
		wantOutputs []string
	}{
		{
			name:     "predeploy",
			template: g.PreDeployTemplate,
		},
		{
			name:        "directory",
			template:    g.DirectoryTemplate,
			wantOutputs: []string{"directoryIp"},
		},
		{
			name:        "servers",
			template:    g.ServersTemplate,
			wantOutputs: []string{"nfsGatewayIp", "storageAccountName"},
		},
		{
			name:     "servers provision",
			template: g.ServersProvisionTemplate,
		},
		{
			name:        "cluster",
			template:    g.ClusterTemplate,
			wantOutputs: []string{"gatewayPublicIp"},
		},
		{
			name:     "gallery",
			template: g.GalleryTemplate,
		},
		{
			name:     "image",
			template: g.ImageTemplate,
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			template := tt.template()

			b, err := g.templateFixup(template)
			if err != nil {
				t.Fatal(err)
			}

			// every parameter referenced by an expression must be
			// declared, and vice versa
			refs := map[string]bool{}
			for _, m := range parameterRefRe.FindAllStringSubmatch(string(b), -1) {
				refs[m[1]] = true
			}

			for ref := range refs {
				if _, found := template.Parameters[ref]; !found {
					t.Errorf("reference to undeclared parameter %s", ref)
				}
			}

			for param := range template.Parameters {
				if !refs[param] {
					t.Errorf("parameter %s is never referenced", param)
				}
			}

			for _, output := range tt.wantOutputs {
				if _, found := template.Outputs[output]; !found {
					t.Errorf("missing output %s", output)
				}
			}
		})
	}
}

func TestTemplateFixup(t *testing.T) {
	g := &generator{}

	template := g.ClusterTemplate()

	b, err := g.templateFixup(template)
	if err != nil {
		t.Fatal(err)
	}

	for _, unwanted := range []string{
		tenantIDHack,
		`"capacity": 1338`,
		`"capacity": 1334`,
		`"threshold": 1333`,
		`"threshold": 1332`,
	} {
		if strings.Contains(string(b), unwanted) {
			t.Errorf("fixup left %s behind", unwanted)
		}
	}

	if !strings.Contains(string(b), `"capacity": "[parameters('vmssCapacity')]"`) {
		t.Error("vmss capacity was not parameterised")
	}
}

var exportRe = regexp.MustCompile(`'([A-Z]+)=\$\(base64 -d`)

func TestProvisionScriptVariables(t *testing.T) {
	g := &generator{}

	for _, tt := range []struct {
		name     string
		template func() *arm.Template
		script   string
	}{
		{"directory", g.DirectoryTemplate, scriptMiniAD},
		{"servers provision", g.ServersProvisionTemplate, scriptNFSGateway},
		{"cluster", g.ClusterTemplate, scriptClusterNode},
		{"image", g.ImageTemplate, scriptRStudioImage},
	} {
		t.Run(tt.name, func(t *testing.T) {
			b, err := g.templateFixup(tt.template())
			if err != nil {
				t.Fatal(err)
			}

			exports := exportRe.FindAllStringSubmatch(string(b), -1)
			if len(exports) == 0 {
				t.Fatal("no exported variables found")
			}

			// every variable exported to a provisioning script must be
			// consumed by it
			for _, m := range exports {
				if !strings.Contains(tt.script, "$"+m[1]) {
					t.Errorf("script does not use %s", m[1])
				}
			}
		})
	}
}

func TestGalleryImageGeneration(t *testing.T) {
	g := &generator{}

	b, err := g.templateFixup(g.GalleryTemplate())
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(string(b), `"hyperVGeneration": "V2"`) {
		t.Error("image definition is not generation V2")
	}
}

func TestCustomScript(t *testing.T) {
	g := &generator{}

	script := g.customScript("echo hello\n", "realm", "directoryIp")

	if !strings.HasPrefix(script, "[base64(concat(") {
		t.Error(script)
	}

	for _, want := range []string{
		"'REALM=$(base64 -d <<<'''",
		"base64(parameters('realm'))",
		"'DIRECTORYIP=$(base64 -d <<<'''",
		"base64(parameters('directoryIp'))",
	} {
		if !strings.Contains(script, want) {
			t.Errorf("missing %s", want)
		}
	}
}
