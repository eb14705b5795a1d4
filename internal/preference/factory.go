package preference

import (
	"fmt"
	"sort"
)

// Closed set of preference type tags. Adding a form means adding a tag here,
// a case in New, and a value type implementing Function.
const (
	TypeCES        = "ces"
	TypeLinear     = "linear"
	TypeQuadratic  = "quadratic"
	TypeTranslog   = "translog"
	TypeStoneGeary = "stone_geary"
)

// Config is the tagged record the scenario loader hands over, already
// deserialized: a type tag from the closed set plus a parameter mapping.
type Config struct {
	Type   string             `yaml:"type" json:"type"`
	Params map[string]float64 `yaml:"params" json:"params"`
}

// ConfigError reports an out-of-domain parameter or an unknown type tag at
// construction time. Construction failures are fatal to the agent being
// built and are never corrected silently.
type ConfigError struct {
	Type   string
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("preference %q: %s", e.Type, e.Reason)
	}
	return fmt.Sprintf("preference %q: %s: %s", e.Type, e.Field, e.Reason)
}

// New constructs the preference form described by cfg. All parameter
// validation happens here, before any simulation step can consume the
// instance; evaluation methods on the returned Function never error.
func New(cfg Config) (Function, error) {
	p := newParams(cfg)

	var (
		fn  Function
		err error
	)
	switch cfg.Type {
	case TypeCES:
		fn, err = NewCES(p.need("weight_a"), p.need("weight_b"), p.need("rho"))
	case TypeLinear:
		fn, err = NewLinear(p.need("weight_a"), p.need("weight_b"))
	case TypeQuadratic:
		fn, err = NewQuadratic(
			p.need("bliss_a"), p.need("bliss_b"),
			p.need("sigma_a"), p.need("sigma_b"),
			p.optional("gamma", 0),
		)
	case TypeTranslog:
		fn, err = NewTranslog(
			p.optional("alpha_0", 0),
			p.need("alpha_a"), p.need("alpha_b"),
			p.optional("beta_aa", 0), p.optional("beta_bb", 0), p.optional("beta_ab", 0),
		)
	case TypeStoneGeary:
		fn, err = NewStoneGeary(
			p.need("alpha_a"), p.need("alpha_b"),
			p.optional("gamma_a", 0), p.optional("gamma_b", 0),
		)
	default:
		return nil, &ConfigError{Type: cfg.Type, Reason: "unknown preference type"}
	}

	if perr := p.finish(); perr != nil {
		return nil, perr
	}
	if err != nil {
		return nil, err
	}
	return fn, nil
}

// params tracks which keys a constructor consumed so that missing and
// unrecognized parameters both surface as configuration errors.
type params struct {
	typ  string
	raw  map[string]float64
	used map[string]bool
	err  error
}

func newParams(cfg Config) *params {
	return &params{typ: cfg.Type, raw: cfg.Params, used: make(map[string]bool, len(cfg.Params))}
}

func (p *params) need(name string) float64 {
	p.used[name] = true
	v, ok := p.raw[name]
	if !ok && p.err == nil {
		p.err = &ConfigError{Type: p.typ, Field: name, Reason: "required parameter missing"}
	}
	return v
}

func (p *params) optional(name string, def float64) float64 {
	p.used[name] = true
	if v, ok := p.raw[name]; ok {
		return v
	}
	return def
}

func (p *params) finish() error {
	if p.err != nil {
		return p.err
	}
	var unknown []string
	for name := range p.raw {
		if !p.used[name] {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return &ConfigError{Type: p.typ, Field: unknown[0], Reason: "unrecognized parameter"}
	}
	return nil
}
