package intent

// DefaultWeight is the amplification factor applied to priority-keyword
// similarity when a profile does not configure its own.
const DefaultWeight float32 = 2.0

// Profile is a named configuration of priority and exclusion keyword sets
// used to bias document selection. Profiles are immutable once loaded; an
// extractor takes ownership of its profile for its whole lifetime.
type Profile struct {
	// Name identifies the profile in a Store.
	Name string `yaml:"name"`

	// HighPriority keywords pull documents toward selection: a document's
	// relevance is its best similarity to any of them.
	HighPriority []string `yaml:"high_priority_keywords"`

	// Exclude keywords push documents out: a document too similar to any of
	// them is dropped before ranking.
	Exclude []string `yaml:"exclude_keywords"`

	// Weight scales priority similarity. Values above 1 amplify the raw
	// cosine score; the result is a tunable relevance score, not a
	// probability. Zero means DefaultWeight.
	Weight float32 `yaml:"weight,omitempty"`
}

// EffectiveWeight returns the configured weight, or DefaultWeight when unset.
func (p *Profile) EffectiveWeight() float32 {
	if p.Weight == 0 {
		return DefaultWeight
	}
	return p.Weight
}

// HasKeywords reports whether the profile configures any keywords at all.
func (p *Profile) HasKeywords() bool {
	return len(p.HighPriority) > 0 || len(p.Exclude) > 0
}
