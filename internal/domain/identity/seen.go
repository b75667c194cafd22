package identity

// Seen records identities already encountered in one table.
// It is not safe for concurrent use; each table owns its own Seen.
type Seen struct {
	keys map[Key]struct{}
}

// NewSeen returns an empty set sized for n identities.
func NewSeen(n int) *Seen {
	return &Seen{keys: make(map[Key]struct{}, n)}
}

// SeenAndRecord reports whether k was already recorded, recording it if not.
func (s *Seen) SeenAndRecord(k Key) bool {
	if _, ok := s.keys[k]; ok {
		return true
	}
	s.keys[k] = struct{}{}
	return false
}
