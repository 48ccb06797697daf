// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package semaphore provides counting semaphores that optionally honor context semantics.

Unlike a buffered channel, a semaphore from this package may start with zero resources and has
no upper bound:  each Release adds a resource, each successful acquire removes one.  Blocked
acquirers are served in arrival order and a Release hands its resource directly to the oldest
waiter, so a wakeup is never lost.
*/
package semaphore
