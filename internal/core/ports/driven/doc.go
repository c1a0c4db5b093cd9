// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the pipeline to function:
//
//   - EmbeddingService: Turns text into a vector via the remote provider
//   - CompletionService: Generates a grounded reply via the remote provider
//   - EmbeddingCache: Persistent fingerprint-to-vector cache
//   - ChatStore: Session and transcript persistence
//   - KnowledgeSource: Loads the fixed document set at startup
//
// The EmbeddingCache is consulted on a best-effort basis: read or write
// failures are treated as cache misses by the core, never propagated.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
