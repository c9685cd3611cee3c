// Package testutil provides helpers shared by cmdcorrect tests.
//
// Key components:
//   - TestEnvironment: isolated config, state and working directories
//   - FileTree: declarative setup of rule and command files
//   - File helpers: CreateFile, ReadFile, AssertFileContent
//
// Each test gets its own temp directories and environment, nothing is shared.
package testutil
