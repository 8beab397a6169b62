package intent

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// profilesFile is the YAML document layout for profile files:
//
//	profiles:
//	  - name: user_post
//	    high_priority_keywords: [ "career update", ... ]
//	    exclude_keywords: [ "advertisement", ... ]
//	    weight: 2.0
type profilesFile struct {
	Profiles []*Profile `yaml:"profiles"`
}

// LoadFile reads a profile Store from a YAML file.
// Returns ErrNoProfiles if the file defines none.
func LoadFile(path string) (*StaticStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file profilesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing profile file %s: %w", path, err)
	}

	if len(file.Profiles) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoProfiles, path)
	}

	for _, p := range file.Profiles {
		if p.Name == "" {
			return nil, fmt.Errorf("profile file %s: profile without a name", path)
		}
	}

	return NewStaticStore(file.Profiles...), nil
}

// SaveFile writes the store's profiles to a YAML file.
func SaveFile(path string, store *StaticStore) error {
	file := profilesFile{}
	for _, name := range store.Names() {
		p, err := store.Lookup(name)
		if err != nil {
			return err
		}
		file.Profiles = append(file.Profiles, p)
	}

	data, err := yaml.Marshal(&file)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
