// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the workflow to function:
//
//   - RegistryClient: Searches the remote connector registry
//   - RecordStore: Installation record persistence
//   - Installer: The external install operation
//   - Prompter: Operator interaction (selection, batched credential entry, confirmations)
//
// # Optional Interfaces
//
// These can be nil - the workflow degrades gracefully:
//
//   - ToolProber: Lists the tools an installed connector will expose. Without
//     it, the confirmation simply omits the tool list.
//   - HistoryStore: Install attempt audit trail. Without it, `mcpm history`
//     is unavailable.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
