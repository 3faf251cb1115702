// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - CountyAdapter: Searches one county's court records
//   - AdapterRegistry: Resolves registered county adapters
//   - JobStore: In-memory search job state
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - HistoryStore: Local search audit trail. Without it, no history is recorded.
//   - CredentialsStore: County subscriber logins. Without it, counties requiring
//     registered access degrade to a graceful skip.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
