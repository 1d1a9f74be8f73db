package main

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	utillog "github.com/miniad/rscluster/pkg/util/log"
)

var (
	gitCommit = "unknown"
)

func usage() {
	fmt.Fprint(flag.CommandLine.Output(), "usage:\n")
	fmt.Fprintf(flag.CommandLine.Output(), "       %s deploy {environment} {manifest_file} {config_file} [phase]\n", os.Args[0])
	fmt.Fprintf(flag.CommandLine.Output(), "       %s validate {environment} {manifest_file} {config_file}\n", os.Args[0])
	fmt.Fprintf(flag.CommandLine.Output(), "       %s destroy {environment} {manifest_file} {config_file}\n", os.Args[0])
	fmt.Fprintf(flag.CommandLine.Output(), "       %s generate\n", os.Args[0])
	fmt.Fprintf(flag.CommandLine.Output(), "\nphases: predeploy, directory, servers, image, cluster\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	ctx := context.Background()
	log := utillog.GetLogger()

	log.Printf("starting, git commit %s", gitCommit)

	var err error
	switch strings.ToLower(flag.Arg(0)) {
	case "deploy":
		checkArgs(4, 5)
		err = deploy(ctx, log)
	case "validate":
		checkArgs(4, 4)
		err = validate(ctx, log)
	case "destroy":
		checkArgs(4, 4)
		err = destroy(ctx, log)
	case "generate":
		checkArgs(1, 1)
		err = generate(ctx, log)
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatal(err)
	}
}

func checkArgs(min, max int) {
	if len(flag.Args()) < min || len(flag.Args()) > max {
		usage()
		os.Exit(2)
	}
}
