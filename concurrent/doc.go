// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package concurrent manages fleets of long-running worker goroutines.

A worker is a loop of identical iterations.  Cancellation is observed between iterations and by
any blocking call inside an iteration that honors its context, so a stopped fleet can always be
joined.  Either every worker of a fleet starts, or none are left running.
*/
package concurrent
