// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2021-2022 Uplift Data Ltd. All rights reserved.

package cmd

const (
	// AppVersion is the current version of the notifier
	AppVersion = "0.3.1"

	// AppName is the name of the application to use in logging / places that require the artifact
	AppName = "uplift"
)
