// Package book implements the in-memory limit order book for a single
// instrument. It maintains two price ladders (bids and asks) over FIFO
// price levels, applies mutations strictly in arrival order, and answers
// liquidity queries without mutating state.
//
// The book is single-writer and deterministic: no internal locking, no
// goroutines, no suspension points. Feed handlers are already sequential
// per instrument, so one writer at a time is an assumption, not a policy.
// Replaying the same mutation stream always reproduces the same state.
package book
