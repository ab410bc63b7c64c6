// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - ConfigStore: Application configuration
//   - DocumentStore: Loaded document snapshots
//   - Normaliser: Turns raw bytes into a Document
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - HistoryStore: Search history. Without it, history is not recorded.
//   - LinkChecker: URL status checks. Without it, every link stays pending.
//   - SearchObserver: Search metrics. Without it, nothing is measured.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
