// Package kernel provides core domain primitives shared across the agromarket
// domain model.
//
// The package includes:
//   - UUID: a value object for unique identifiers with validation and comparison
//   - Quantity: produce weight normalized to kilograms, with quintal and ton
//     conversion at the boundary
//   - Money: a fixed-decimal monetary amount for prices, totals, and fees
//   - Actor: the resolved subject/role pair every core operation receives as
//     an explicit capability token
//
// These primitives enforce domain invariants and validation rules, ensuring
// that domain objects are always in a valid state. They are immutable and
// safe for concurrent use.
package kernel
