// Package domain contains the core domain entities and value objects for rosim.
//
// This package represents the innermost layer of the application. It has no
// dependencies on infrastructure concerns (files, HTTP, logging) and contains
// only the data model of the reverse-osmosis simulation.
//
// # Entities
//
//   - [MembraneSpec]: Transport coefficients for one membrane product
//   - [StreamState]: Flow, concentration and pressure at one point in the chain
//   - [SimulationInput]: Feed conditions and vessel configuration for one run
//   - [SimulationResult]: Immutable aggregate of one vessel simulation
//   - [HistoryRecord]: A stored result with its timestamp
//
// # Design Principles
//
// Domain entities are:
//   - Immutable after construction (where practical)
//   - Free of infrastructure dependencies
//   - Testable without mocks or external systems
package domain
