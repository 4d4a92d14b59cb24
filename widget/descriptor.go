package widget

// Descriptor is the registration metadata a host reads before showing a widget.
type Descriptor struct {
	Kind        string
	DisplayName string
	Description string
	Families    []Family
}

// DefaultDescriptor describes the current-time widget.
func DefaultDescriptor() Descriptor {
	return Descriptor{
		Kind:        "Static_Widget",
		DisplayName: "My Widget",
		Description: "This is an example widget.",
		Families:    Families(),
	}
}

// Supports reports whether f is one of the declared families.
func (d Descriptor) Supports(f Family) bool {
	for _, s := range d.Families {
		if s == f {
			return true
		}
	}
	return false
}
