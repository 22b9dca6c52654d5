// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package plan turns an environment snapshot into the resolved build
// configuration handed to the external build executor.
//
// # Core Concepts
//
//   - Constants: the two build-time literals (__COMMIT_HASH__ and
//     __BUILD_DATE__) substituted verbatim into application source.
//
//   - PluginDescriptor: a named plugin with its static options. The
//     executor composes its transform pipeline in list order, so the order
//     produced here is part of the contract.
//
//   - Extension: an optional plugin appended after the fixed baseline list
//     for the modes it applies to. The baseline configuration has none.
//
//   - ResolvedConfig: base path, define map and plugin list for one build
//     invocation.
//
// Resolution is a single synchronous pass. The only inputs are the
// environment snapshot, the settings, a clock and a revision source; the
// timestamp is the only output that differs between two calls made with the
// same inputs.
package plan
