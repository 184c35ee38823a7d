// Package options validates mutually exclusive input options.
package options

import (
	"fmt"
	"strings"
)

// Source is one way an input can be supplied.
type Source struct {
	// Name is how the option is spelled to the caller (e.g., "file", "WithReader")
	Name string
	// Set reports whether the caller supplied it
	Set bool
}

// Named returns a Source.
func Named(name string, set bool) Source {
	return Source{Name: name, Set: set}
}

// ExactlyOne returns an error unless exactly one of sources is set. The
// message lists every source name, e.g.
// "exactly one of file, url, or content must be provided (got 2)".
func ExactlyOne(sources ...Source) error {
	count := 0
	names := make([]string, 0, len(sources))
	for _, s := range sources {
		names = append(names, s.Name)
		if s.Set {
			count++
		}
	}
	if count == 1 {
		return nil
	}
	return fmt.Errorf("exactly one of %s must be provided (got %d)", orList(names), count)
}

// orList joins names as "a", "a or b" or "a, b, or c".
func orList(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return names[0] + " or " + names[1]
	}
	return strings.Join(names[:len(names)-1], ", ") + ", or " + names[len(names)-1]
}
