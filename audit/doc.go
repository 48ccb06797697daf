// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package audit checks the safety invariants of the synchronization protocols while they run.

Each checker is called from inside a protocol's critical sections and records any interleaving
that the protocol should have made impossible.  Violations are logged, counted, and retained so
that tests and shutdown reports can inspect them.
*/
package audit
