package generator

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	_ "embed"
)

//go:embed scripts/miniad.sh
var scriptMiniAD string

//go:embed scripts/nfsgateway.sh
var scriptNFSGateway string

//go:embed scripts/rstudio-image.sh
var scriptRStudioImage string

//go:embed scripts/cluster-node.sh
var scriptClusterNode string
