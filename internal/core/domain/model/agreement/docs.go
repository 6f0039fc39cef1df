// Package agreement contains the purchase agreement aggregate: the signed
// contract between seller and buyer that fixes the advance/final payment
// split before an order can be dispatched.
package agreement
