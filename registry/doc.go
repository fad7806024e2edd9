// SPDX-FileCopyrightText: Copyright 2026 Personify Authors
// SPDX-License-Identifier: Apache-2.0

/*
Package registry is the client for the remote Personify registry API and for
the fallback static index.

The client exposes typed methods for index fetch, direct-by-name lookup,
version content fetch, digest lookup, search, categories, and publish. All
network-bound methods return parsed results or a structured [*APIError].

Behavior shared by every request:

  - a fixed per-request timeout; exceeding it counts as a network failure
  - retry with exponential backoff on 5xx, 429, and network-level failures,
    up to a small fixed budget, after which a [*NetworkError] surfaces
  - no retry on other 4xx responses; they convert to [*APIError] immediately

Idempotent lookups (the full index, the category list) are cached in-process
with distinct TTLs, keyed by logical endpoint and base URL. [Client.ClearCache]
drops every cached entry, including the fallback source's.

Direct-by-name lookup that fails for any reason other than a definitive
"not found" falls back to resolving the name from the static index when a
fallback source is configured. A primary 404 is trusted and never triggers
fallback.
*/
package registry
