package normalizer

import "slcricket/pkg/utils"

// VenueSet is the fixed list of the designated team's home grounds.
// Membership ignores case, spacing and accents.
type VenueSet struct {
	names []string
	index map[string]struct{}
}

// NewVenueSet builds a set from venue names. Blank names are ignored.
func NewVenueSet(names ...string) *VenueSet {
	s := &VenueSet{index: make(map[string]struct{}, len(names))}

	for _, name := range names {
		key := utils.Fold(name)
		if key == "" {
			continue
		}

		if _, dup := s.index[key]; dup {
			continue
		}

		s.index[key] = struct{}{}
		s.names = append(s.names, utils.CollapseWhitespace(name))
	}

	return s
}

// Contains reports whether ground is a home venue.
func (s *VenueSet) Contains(ground string) bool {
	if s == nil {
		return false
	}

	_, ok := s.index[utils.Fold(ground)]

	return ok
}

// Names returns the venues in insertion order.
func (s *VenueSet) Names() []string {
	if s == nil {
		return nil
	}

	return append([]string(nil), s.names...)
}

// Len returns the number of distinct venues.
func (s *VenueSet) Len() int {
	if s == nil {
		return 0
	}

	return len(s.names)
}
