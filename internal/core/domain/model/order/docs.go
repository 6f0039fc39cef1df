// Package order contains the Order aggregate and its status machine: the
// strict multi-party lifecycle a reservation moves through from the buyer's
// purchase to seller acceptance, carrier handoff, and settlement. All
// party-driven transitions are actor-guarded; all transitions are validated
// against the current status so a wrong-state attempt fails with a conflict
// and no side effects.
package order
