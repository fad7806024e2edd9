// SPDX-FileCopyrightText: Copyright 2026 Personify Authors
// SPDX-License-Identifier: Apache-2.0

/*
Package auth manages registry credentials: a scope-independent bearer token
file plus the device-authorization login flow used to obtain one.

The token file lives under the user's config directory and is written with
owner-only permissions. The device flow polls the token endpoint at a fixed
interval, doubles the interval on a "slow down" signal, and gives up at the
absolute expiry deadline reported by the authorization server.
*/
package auth
