// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2021-2022 Uplift Data Ltd. All rights reserved.

package models

import (
	"fmt"
)

// Error pairs an execution with a human readable failure message. The message
// is opaque at this layer; any structure is flattened to text upstream.
type Error struct {
	Execution Execution
	Message   string
}

func (e Error) String() string {
	return fmt.Sprintf("%s: %s", e.Execution, e.Message)
}
