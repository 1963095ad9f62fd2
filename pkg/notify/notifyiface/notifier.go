// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2021-2022 Uplift Data Ltd. All rights reserved.

package notifyiface

import (
	"github.com/uplift-data/uplift/pkg/models"
)

// Notifier describes the interface for delivering a batch of collected errors
// for one destination type to an external channel.
//
// Implementations consume the batch in a single pass and decide whether and
// how to render and deliver it; declining to deliver is a valid outcome.
type Notifier interface {
	Notify(destinationType models.DestinationType, errs []models.Error) error
}
