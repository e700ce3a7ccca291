package repository

import "io/fs"

// Option applies a configuration option to the JSONStore.
type Option func(*JSONStore)

// WithPetsPath sets the path of pets.json.
func WithPetsPath(path string) Option {
	return func(s *JSONStore) {
		if path != "" {
			s.petsPath = path
		}
	}
}

// WithTalentsPath sets the path of talents.json.
func WithTalentsPath(path string) Option {
	return func(s *JSONStore) {
		if path != "" {
			s.talentsPath = path
		}
	}
}

// WithFS reads from fsys instead of the OS filesystem. Paths are then
// relative to fsys.
func WithFS(fsys fs.FS) Option {
	return func(s *JSONStore) {
		if fsys != nil {
			s.fsys = fsys
		}
	}
}
