// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package rooms tracks which realtime connections observe which
election and fans broadcasts out to them.

A Hub holds one room per election. Subscribe and Unsubscribe are
idempotent and safe under concurrent connect/disconnect; Drop removes
a connection from every room and closes its outbound stream.

Delivery is best-effort per connection: each subscriber has a bounded
outbound queue and Broadcast never blocks. When a queue overflows the
oldest entry is evicted, so a stalled observer degrades only its own
view. A client that missed messages repairs itself by resubscribing
and taking a fresh snapshot; the hub never replays.
*/
package rooms
