package staticfs

import "slices"

// Capability represents a capability that a backend can provide.
type Capability string

const (
	// CapabilityModTime marks backends that store modification timestamps.
	CapabilityModTime Capability = "mod_time"
	// CapabilityContentType marks backends that store or derive MIME types.
	CapabilityContentType Capability = "content_type"
	// CapabilityPopulate marks backends that can be provisioned from an index tree.
	CapabilityPopulate Capability = "populate"
	// CapabilityVirtualDir marks backends whose directories exist only as key prefixes.
	CapabilityVirtualDir Capability = "virtual_dir"
)

// Capabilities describes what a backend supports.
type Capabilities struct {
	Capabilities []Capability `json:"capabilities"`

	// MaxObjectSize is the largest object the backend can serve (0 = unlimited).
	MaxObjectSize int64 `json:"max_object_size"`
}

// Contains checks if a capability is supported.
func (c *Capabilities) Contains(cap Capability) bool {
	return slices.Contains(c.Capabilities, cap)
}
