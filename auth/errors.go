// SPDX-FileCopyrightText: Copyright 2026 Personify Authors
// SPDX-License-Identifier: Apache-2.0

package auth

import "errors"

var (
	// ErrNoToken indicates no credential is stored.
	ErrNoToken = errors.New("not logged in")

	// ErrTokenExpired indicates the stored credential has expired.
	ErrTokenExpired = errors.New("stored token has expired")

	// ErrDeviceFlowExpired indicates the device authorization expired
	// before the user approved it.
	ErrDeviceFlowExpired = errors.New("device authorization expired before approval")

	// ErrAccessDenied indicates the user rejected the authorization request.
	ErrAccessDenied = errors.New("authorization request was denied")
)
