package generator

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/miniad/rscluster/pkg/util/arm"
)

// Generator builds the phase templates, and can emit them as JSON artifacts
// for inspection.
type Generator interface {
	Artifacts() error

	PreDeployTemplate() *arm.Template
	DirectoryTemplate() *arm.Template
	ServersTemplate() *arm.Template
	ServersProvisionTemplate() *arm.Template
	ClusterTemplate() *arm.Template
	GalleryTemplate() *arm.Template
	ImageTemplate() *arm.Template
}

type generator struct{}

func New() Generator {
	return &generator{}
}

func (g *generator) Artifacts() error {
	for _, i := range []struct {
		templateFile   string
		parametersFile string
		template       func() *arm.Template
	}{
		{FilePreDeploy, filePreDeployParameters, g.PreDeployTemplate},
		{FileDirectory, fileDirectoryParameters, g.DirectoryTemplate},
		{FileServers, fileServersParameters, g.ServersTemplate},
		{FileServersProvision, fileServersProvisionParameters, g.ServersProvisionTemplate},
		{FileCluster, fileClusterParameters, g.ClusterTemplate},
		{FileGallery, fileGalleryParameters, g.GalleryTemplate},
		{FileImage, fileImageParameters, g.ImageTemplate},
	} {
		t := i.template()

		err := g.writeTemplate(t, i.templateFile)
		if err != nil {
			return err
		}

		err = g.writeParameters(t, i.parametersFile)
		if err != nil {
			return err
		}
	}

	return nil
}

func (g *generator) writeTemplate(t *arm.Template, output string) error {
	b, err := g.templateFixup(t)
	if err != nil {
		return err
	}

	return os.WriteFile(output, b, 0666)
}

// writeParameters writes a skeleton parameters file naming every parameter of
// the template, in sorted order
func (g *generator) writeParameters(t *arm.Template, output string) error {
	p := parametersStanza()

	names := make([]string, 0, len(t.Parameters))
	for name := range t.Parameters {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		p.Parameters[name] = &arm.ParametersParameter{}
	}

	b, err := json.MarshalIndent(p, "", "    ")
	if err != nil {
		return err
	}
	b = append(b, byte('\n'))

	return os.WriteFile(output, b, 0666)
}
