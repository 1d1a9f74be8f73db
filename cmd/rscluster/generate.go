package main

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/miniad/rscluster/pkg/deploy/generator"
)

// generate writes the phase templates and skeleton parameters files to the
// working directory, for review or for deployment outside this tool
func generate(ctx context.Context, log *logrus.Entry) error {
	return generator.New().Artifacts()
}
