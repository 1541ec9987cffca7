package pipeline

import (
	"github.com/terrapower/armicontrib-dif3d/internal/aggregate"
)

// Field names, matching the parameters the host model stores them under.
const (
	FieldPowerDensity     = "pdens"
	FieldPeakPowerDensity = "ppdens"
	FieldPower            = "power"
	FieldMultigroupFlux   = "mgFlux"
	FieldFlux             = "flux"
	FieldAdjointMgFlux    = "adjMgFlux"
	FieldAdjointFlux      = "fluxAdj"
	FieldPeakFlux         = "fluxPeak"
)

// Object is one domain object of the host model, identified by the host
// and located in the solver model by its region label.
type Object struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
}

// ObjectResult holds the values computed for one object.
type ObjectResult struct {
	Label       string               `yaml:"label"`
	RegionIndex int                  `yaml:"region_index"`
	Cells       int                  `yaml:"cells"`
	Scalars     map[string]float64   `yaml:"scalars,omitempty"`
	Vectors     map[string][]float64 `yaml:"vectors,omitempty"`
}

// Results maps object IDs to computed values. A field appears either for
// every object or for none.
type Results struct {
	PassID      string                   `yaml:"pass_id"`
	RunDir      string                   `yaml:"run_dir"`
	Keff        float64                  `yaml:"keff"`
	Convergence string                   `yaml:"convergence"`
	Solution    string                   `yaml:"solution"`
	Fields      []string                 `yaml:"fields"`
	Skipped     []string                 `yaml:"skipped,omitempty"`
	Warnings    []aggregate.Warning      `yaml:"warnings,omitempty"`
	Objects     map[string]*ObjectResult `yaml:"objects"`
}

// Scalar returns a scalar field of object id.
func (r *Results) Scalar(id, field string) (float64, bool) {
	o, ok := r.Objects[id]
	if !ok {
		return 0, false
	}
	v, ok := o.Scalars[field]
	return v, ok
}

// Vector returns a per-group field of object id.
func (r *Results) Vector(id, field string) ([]float64, bool) {
	o, ok := r.Objects[id]
	if !ok {
		return nil, false
	}
	v, ok := o.Vectors[field]
	return v, ok
}

// Has reports whether field was applied.
func (r *Results) Has(field string) bool {
	for _, f := range r.Fields {
		if f == field {
			return true
		}
	}
	return false
}

// staging collects one field for every object before it is merged.
type staging struct {
	field   string
	scalars map[string]float64
	vectors map[string][]float64
}

func newStaging(field string) *staging {
	return &staging{field: field, scalars: make(map[string]float64), vectors: make(map[string][]float64)}
}

func (r *Results) merge(stages ...*staging) {
	for _, s := range stages {
		for id, v := range s.scalars {
			o := r.Objects[id]
			if o.Scalars == nil {
				o.Scalars = make(map[string]float64)
			}
			o.Scalars[s.field] = v
		}
		for id, v := range s.vectors {
			o := r.Objects[id]
			if o.Vectors == nil {
				o.Vectors = make(map[string][]float64)
			}
			o.Vectors[s.field] = v
		}
		r.Fields = append(r.Fields, s.field)
	}
}
