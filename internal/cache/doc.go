// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

/*
Package cache provides a thread-safe in-memory cache with TTL expiry and an
optional entry limit.

The dashboard caches rendered region fragments keyed by the coarse window,
the committed range and the reported region widths, so that re-selecting a
range that was already drawn (toggling between two years, re-applying the
same dates) skips aggregation and rendering. Rendering is deterministic, so
a cached fragment is identical to a fresh one.

Keys are built with GenerateKey, which hashes the JSON encoding of the
parameters:

	key := cache.GenerateKey("regions", params)
	if v, ok := c.Get(key); ok {
	    return v.([]render.Fragment)
	}

Expired entries are removed lazily on Get and by a background sweep that
stops when Close is called.
*/
package cache
