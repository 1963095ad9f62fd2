// PROPRIETARY AND CONFIDENTIAL
//
// Unauthorized copying of this file via any medium is strictly prohibited.
//
// Copyright (c) 2021-2022 Uplift Data Ltd. All rights reserved.

package models

import (
	"fmt"
)

// ReportBuffer holds the counters gathered over one processing run for
// emission to a downstream stats store
type ReportBuffer struct {
	ErrorsCollected   int64
	ErrorsSuperseded  int64
	ReportsSent       int64
	ReportsSuppressed int64
	ReportsFailed     int64
}

// AppendCollected accounts for one accepted error; superseded denotes that an
// earlier message for the same execution was overwritten
func (b *ReportBuffer) AppendCollected(superseded bool) {
	b.ErrorsCollected++
	if superseded {
		b.ErrorsSuperseded++
	}
}

// AppendReportSent accounts for one batch handed to a notifier
func (b *ReportBuffer) AppendReportSent() {
	b.ReportsSent++
}

// AppendReportSuppressed accounts for one flush that carried no errors
func (b *ReportBuffer) AppendReportSuppressed() {
	b.ReportsSuppressed++
}

// AppendReportFailed accounts for one batch the notifier could not deliver
func (b *ReportBuffer) AppendReportFailed() {
	b.ReportsFailed++
}

// Append merges another buffer into this one
func (b *ReportBuffer) Append(other *ReportBuffer) {
	if other == nil {
		return
	}
	b.ErrorsCollected += other.ErrorsCollected
	b.ErrorsSuperseded += other.ErrorsSuperseded
	b.ReportsSent += other.ReportsSent
	b.ReportsSuppressed += other.ReportsSuppressed
	b.ReportsFailed += other.ReportsFailed
}

func (b *ReportBuffer) String() string {
	return fmt.Sprintf(
		"ErrorsCollected:%d,ErrorsSuperseded:%d,ReportsSent:%d,ReportsSuppressed:%d,ReportsFailed:%d",
		b.ErrorsCollected,
		b.ErrorsSuperseded,
		b.ReportsSent,
		b.ReportsSuppressed,
		b.ReportsFailed,
	)
}
