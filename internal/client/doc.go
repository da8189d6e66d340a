// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CipherChat Authors

// Package client implements the interactive client application runtime.
//
// It wires the terminal chat loop, client services, and key setup flow
// into a single process lifecycle.
package client
