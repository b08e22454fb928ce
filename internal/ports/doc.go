// Package ports defines the interfaces (ports) that connect the simulation
// core to infrastructure adapters.
//
// Ports are the boundaries between the application core and the outside
// world. They define what the core needs from external systems without
// specifying how those needs are fulfilled.
//
// # Port Interfaces
//
//   - [SpecSource]: Resolves membrane product names to transport coefficients
//   - [HistoryStore]: Persists and retrieves simulation results
//
// The core packages (internal/transport, internal/vessel) depend only on
// these interfaces. Infrastructure adapters (internal/registry,
// internal/adapters/history) implement them.
package ports
