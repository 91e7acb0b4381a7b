package fileset

import "slices"

// Set maps each category to absolute file paths in discovery order. A Set is
// rebuilt wholesale on every import; it is never merged with a previous one.
type Set struct {
	files map[Category][]string
	seen  map[string]struct{}
}

// New returns an empty Set.
func New() *Set {
	return &Set{
		files: make(map[Category][]string),
		seen:  make(map[string]struct{}),
	}
}

// Add appends path to the bucket chosen by its extension. Untracked
// extensions and duplicates are ignored; the return value reports whether the
// path was recorded.
func (s *Set) Add(path string) bool {
	cat, ok := CategoryFor(path)
	if !ok {
		return false
	}
	if _, dup := s.seen[path]; dup {
		return false
	}
	s.seen[path] = struct{}{}
	s.files[cat] = append(s.files[cat], path)
	return true
}

// Files returns a copy of the paths recorded for cat.
func (s *Set) Files(cat Category) []string {
	if s == nil {
		return nil
	}
	return slices.Clone(s.files[cat])
}

// Union concatenates the given categories in argument order.
func (s *Set) Union(cats ...Category) []string {
	var out []string
	for _, cat := range cats {
		out = append(out, s.Files(cat)...)
	}
	return out
}

// Count returns the number of paths in cat.
func (s *Set) Count(cat Category) int {
	if s == nil {
		return 0
	}
	return len(s.files[cat])
}

// Any reports whether at least one of cats is non-empty.
func (s *Set) Any(cats ...Category) bool {
	for _, cat := range cats {
		if s.Count(cat) > 0 {
			return true
		}
	}
	return false
}

// Total returns the number of tracked paths across all categories.
func (s *Set) Total() int {
	if s == nil {
		return 0
	}
	total := 0
	for _, paths := range s.files {
		total += len(paths)
	}
	return total
}

// Clear empties the listed categories.
func (s *Set) Clear(cats ...Category) {
	if s == nil {
		return
	}
	for _, cat := range cats {
		for _, path := range s.files[cat] {
			delete(s.seen, path)
		}
		delete(s.files, cat)
	}
}

// Equal reports whether both sets hold the same paths in the same order.
func (s *Set) Equal(other *Set) bool {
	for _, cat := range Categories {
		if !slices.Equal(s.Files(cat), other.Files(cat)) {
			return false
		}
	}
	return true
}
