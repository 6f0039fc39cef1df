// Package shipment contains the delivery aggregate created when a carrier
// wins the exclusive claim on a ready order. It tracks the pickup-to-handoff
// progression with write-once stage timestamps.
package shipment
