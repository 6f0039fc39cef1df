// Package listing contains the Listing aggregate: a sellable crop lot with a
// total and a reserved quantity. It is the domain side of the inventory
// ledger — the single source of truth for how much of a lot is still
// sellable. Reservation, release, and settlement all express their
// post-conditions here; the persistence adapter applies the same
// post-conditions atomically so the invariant 0 ≤ reserved ≤ quantity holds
// under concurrent writers.
package listing
