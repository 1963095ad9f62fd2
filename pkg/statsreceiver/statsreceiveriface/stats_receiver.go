// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2021-2022 Uplift Data Ltd. All rights reserved.

package statsreceiveriface

import (
	"github.com/uplift-data/uplift/pkg/models"
)

// StatsReceiver describes the interface for how to push run statistics
// to a downstream store
type StatsReceiver interface {
	Send(buffer *models.ReportBuffer)
}
