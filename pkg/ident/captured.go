package ident

// Captured is an owning copy of an identity, suitable for storage across
// traversals. The zero value holds nothing.
//
// Capture stores a clone of the given ID, so the original may reference
// externally held values that do not outlive the traversal.
type Captured struct {
	id ID
}

// Capture replaces the stored identity with a clone of id. Passing nil
// clears the capture.
func (c *Captured) Capture(id ID) {
	if id == nil {
		c.id = nil
		return
	}
	c.id = id.Clone()
}

// Matches reports whether an identity has been captured and it matches id.
func (c *Captured) Matches(id ID) bool {
	return c.id != nil && id != nil && Match(c.id, id)
}

// IsSet reports whether an identity has been captured.
func (c *Captured) IsSet() bool {
	return c.id != nil
}

// Get returns the captured identity, or nil if none has been captured.
func (c *Captured) Get() ID {
	return c.id
}

// Clear discards the captured identity.
func (c *Captured) Clear() {
	c.id = nil
}

// Equal reports whether two captures hold matching identities (or are both
// empty).
func (c *Captured) Equal(other *Captured) bool {
	if c.IsSet() != other.IsSet() {
		return false
	}
	return !c.IsSet() || Match(c.id, other.id)
}
