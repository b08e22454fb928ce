package registry

import (
	"fmt"
	"os"
	"sort"
	"sync"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/osmoflow/rosim/internal/domain"
	"github.com/osmoflow/rosim/pkg/log"
)

// catalogFile mirrors the TOML layout of the membrane catalog:
//
//	[membranes.CPA5-LD]
//	a_value = 3.0e-7
//	b_value = 2.0e-8
//	area_m2 = 37.0
//	default_dp_element = 0.3
//	default_osm_coef = 0.0008
type catalogFile struct {
	Membranes map[string]specEntry `toml:"membranes"`
}

type specEntry struct {
	AValue    float64 `toml:"a_value"`
	BValue    float64 `toml:"b_value"`
	AreaM2    float64 `toml:"area_m2"`
	DPElement float64 `toml:"default_dp_element"`
	OsmCoef   float64 `toml:"default_osm_coef"`
}

// Registry is a reloadable, read-mostly membrane spec catalog.
// Lookup and Products are safe for concurrent use with Reload.
type Registry struct {
	path string
	log  log.Logger

	mu    sync.RWMutex
	specs map[string]domain.MembraneSpec
}

// Load reads the catalog at path. A nil logger falls back to the no-op
// logger. Errors wrap domain.ErrInvalidConfig and are fatal to startup.
func Load(path string, logger log.Logger) (*Registry, error) {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	r := &Registry{path: path, log: logger}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// Reload re-reads the catalog file. On error the previous catalog stays in
// effect.
func (r *Registry) Reload() error {
	specs, err := readCatalog(r.path)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.specs = specs
	r.mu.Unlock()

	r.log.Info("membrane catalog loaded",
		log.String("path", r.path),
		log.Int("products", len(specs)))
	return nil
}

// Lookup returns the spec for the given product name.
func (r *Registry) Lookup(name string) (domain.MembraneSpec, error) {
	r.mu.RLock()
	spec, ok := r.specs[name]
	r.mu.RUnlock()

	if !ok {
		return domain.MembraneSpec{}, fmt.Errorf("%w: %q", domain.ErrProductNotFound, name)
	}
	return spec, nil
}

// Products returns all specs sorted by product name.
func (r *Registry) Products() []domain.MembraneSpec {
	r.mu.RLock()
	out := make([]domain.MembraneSpec, 0, len(r.specs))
	for _, spec := range r.specs {
		out = append(out, spec)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Path returns the catalog file path.
func (r *Registry) Path() string {
	return r.path
}

func readCatalog(path string) (map[string]domain.MembraneSpec, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read membrane catalog: %v", domain.ErrInvalidConfig, err)
	}

	var cf catalogFile
	if err := toml.Unmarshal(b, &cf); err != nil {
		return nil, fmt.Errorf("%w: parse membrane catalog %s: %v", domain.ErrInvalidConfig, path, err)
	}
	if len(cf.Membranes) == 0 {
		return nil, fmt.Errorf("%w: membrane catalog %s defines no products", domain.ErrInvalidConfig, path)
	}

	specs := make(map[string]domain.MembraneSpec, len(cf.Membranes))
	for name, e := range cf.Membranes {
		if e.AreaM2 <= 0 {
			return nil, fmt.Errorf("%w: product %q: area_m2 must be positive", domain.ErrInvalidConfig, name)
		}
		if e.AValue < 0 || e.BValue < 0 || e.DPElement < 0 || e.OsmCoef < 0 {
			return nil, fmt.Errorf("%w: product %q: coefficients must not be negative", domain.ErrInvalidConfig, name)
		}
		specs[name] = domain.MembraneSpec{
			Name:      name,
			AValue:    e.AValue,
			BValue:    e.BValue,
			AreaM2:    e.AreaM2,
			DPElement: e.DPElement,
			OsmCoef:   e.OsmCoef,
		}
	}
	return specs, nil
}
