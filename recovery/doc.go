// SPDX-FileCopyrightText: Copyright 2026 Personify Authors
// SPDX-License-Identifier: Apache-2.0

// Package recovery converts panics into errors so a single failing unit of
// work cannot take down an entire batch.
package recovery
