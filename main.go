// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2021-2022 Uplift Data Ltd. All rights reserved.

package main

import (
	"github.com/uplift-data/uplift/cmd/cli"
)

func main() {
	cli.RunCli()
}
