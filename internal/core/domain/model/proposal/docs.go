// Package proposal contains the Proposal aggregate: the counter-bid
// negotiation path that converges with direct orders on the same inventory
// ledger. Submission reserves nothing; acceptance re-validates against the
// listing's current availability and performs the same reservation an order
// does. Fees are derived once, by a pure function, at creation or explicit
// modification.
package proposal
