// Package domain defines the core business entities for Samchat.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A knowledge-base entry with its embedding
//   - MatchResult: The outcome of ranking a query against the index
//   - Session / Message: The persisted conversation transcript
//   - Intent: A canned exchange answered without retrieval
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
