// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package aggregate turns committed counter increments into
broadcastable result updates.

Each position gets a dedicated worker goroutine with a bounded
mailbox, so recomputation for one position is strictly serialized
while different positions recompute in parallel. Every recomputation
reads the current counters from the tally store rather than trusting
the increment's payload, which keeps the emitted views monotonic even
if increments arrive out of order or are evicted under load. Cost per
update is bounded by the number of candidates in the affected
position.
*/
package aggregate
