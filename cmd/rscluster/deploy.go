package main

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"
	"flag"
	"fmt"

	"github.com/sirupsen/logrus"

	deployer "github.com/miniad/rscluster/pkg/deploy"
	"github.com/miniad/rscluster/pkg/env"
	"github.com/miniad/rscluster/pkg/manifest"
)

// newProvisioner assembles the provisioner from the three deploy arguments:
// environment name, manifest file and config file
func newProvisioner(ctx context.Context, log *logrus.Entry) (deployer.Provisioner, error) {
	_env, err := env.NewCore(log)
	if err != nil {
		return nil, err
	}

	m, err := manifest.Load(flag.Arg(2))
	if err != nil {
		return nil, err
	}

	config, err := deployer.GetConfig(flag.Arg(1), flag.Arg(3))
	if err != nil {
		return nil, err
	}

	return deployer.New(ctx, log, _env, m, config)
}

func deploy(ctx context.Context, log *logrus.Entry) error {
	p, err := newProvisioner(ctx, log)
	if err != nil {
		return err
	}

	switch phase := flag.Arg(4); phase {
	case "predeploy":
		return p.PreDeploy(ctx)
	case "directory":
		return p.DeployDirectory(ctx)
	case "servers":
		return p.DeployServers(ctx)
	case "image":
		return p.BuildImage(ctx)
	case "cluster":
		return p.DeployCluster(ctx)
	case "":
		// all phases in dependency order, then validate the result
		for _, f := range []func(context.Context) error{
			p.PreDeploy,
			p.DeployDirectory,
			p.DeployServers,
			p.BuildImage,
			p.DeployCluster,
			p.ValidateCluster,
		} {
			err = f(ctx)
			if err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown phase %q", phase)
	}
}

func validate(ctx context.Context, log *logrus.Entry) error {
	p, err := newProvisioner(ctx, log)
	if err != nil {
		return err
	}

	return p.ValidateCluster(ctx)
}

func destroy(ctx context.Context, log *logrus.Entry) error {
	p, err := newProvisioner(ctx, log)
	if err != nil {
		return err
	}

	return p.Destroy(ctx)
}
