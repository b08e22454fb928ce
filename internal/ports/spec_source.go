package ports

import "github.com/osmoflow/rosim/internal/domain"

// SpecSource resolves membrane product names to their transport coefficients.
// Implementations are read-only from the caller's point of view; returned
// specs must never be mutated by later reloads.
type SpecSource interface {
	// Lookup returns the spec for the given product name.
	// Returns an error wrapping domain.ErrProductNotFound if the product
	// is not in the catalog.
	Lookup(name string) (domain.MembraneSpec, error)

	// Products returns all specs in the catalog, sorted by product name.
	Products() []domain.MembraneSpec
}
