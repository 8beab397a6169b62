package intent

import (
	"fmt"
	"sort"
)

// Store resolves intent names to profiles.
type Store interface {
	// Lookup returns the profile registered under name.
	// Returns ErrUnknownIntent if no such profile exists.
	Lookup(name string) (*Profile, error)

	// Names returns all registered profile names, sorted.
	Names() []string
}

// StaticStore is an immutable in-memory Store.
type StaticStore struct {
	profiles map[string]*Profile
}

var _ Store = (*StaticStore)(nil)

// NewStaticStore creates a store from the given profiles.
// Later profiles with duplicate names replace earlier ones.
func NewStaticStore(profiles ...*Profile) *StaticStore {
	m := make(map[string]*Profile, len(profiles))
	for _, p := range profiles {
		if p != nil && p.Name != "" {
			m[p.Name] = p
		}
	}
	return &StaticStore{profiles: m}
}

// Lookup returns the profile registered under name.
func (s *StaticStore) Lookup(name string) (*Profile, error) {
	p, ok := s.profiles[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownIntent, name)
	}
	return p, nil
}

// Names returns all registered profile names, sorted.
func (s *StaticStore) Names() []string {
	names := make([]string, 0, len(s.profiles))
	for name := range s.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BuiltinStore returns the store of profiles shipped with sift.
func BuiltinStore() *StaticStore {
	return NewStaticStore(
		&Profile{
			Name: "user_post",
			HighPriority: []string{
				"career update", "new role announcement", "personal achievement",
				"project launch", "conference talk", "published article",
				"professional milestone", "award recognition",
			},
			Exclude: []string{
				"advertisement", "giveaway", "discount code",
				"sponsored promotion", "hiring spam",
			},
		},
		&Profile{
			Name: "company_post",
			HighPriority: []string{
				"product launch", "funding announcement", "partnership deal",
				"quarterly results", "executive appointment", "acquisition news",
				"company milestone", "expansion announcement",
			},
			Exclude: []string{
				"job posting", "webinar invitation", "holiday greeting",
				"generic marketing slogan",
			},
		},
		&Profile{
			Name: "news",
			HighPriority: []string{
				"breaking news", "market analysis", "industry report",
				"regulatory change", "official statement",
			},
			Exclude: []string{
				"opinion piece", "sponsored content", "celebrity gossip",
			},
		},
	)
}
