// Package testutil provides utilities for testing dotf components.
//
// Key components:
//   - TestEnvironment: a home directory and a repository on either an
//     in-memory or a temp-directory filesystem
//   - FileTree: declarative directory content for either root
//   - file helpers that fail the test instead of returning errors
//
// Usage guidelines:
//   - Prefer EnvMemoryOnly for classification and copy tests
//   - Use EnvIsolated when glob expansion or external commands need a
//     real directory
//   - Define test data inline, not in external files
package testutil
