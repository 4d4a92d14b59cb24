package widget

import (
	"fmt"
	"strings"
)

// Family is the display-size category the host asks a view for.
// The zero value is not a valid family.
type Family int

const (
	Small Family = iota + 1
	Medium
	Large
)

// Families lists every family in display order.
func Families() []Family {
	return []Family{Small, Medium, Large}
}

// String returns the short name used in configuration.
func (f Family) String() string {
	switch f {
	case Small:
		return "small"
	case Medium:
		return "medium"
	case Large:
		return "large"
	}
	return fmt.Sprintf("Family(%d)", int(f))
}

// Valid reports whether f is one of the known families.
func (f Family) Valid() bool {
	return f >= Small && f <= Large
}

// ParseFamily accepts the short names and the platform names
// (systemSmall, systemMedium, systemLarge), case-insensitively.
func ParseFamily(s string) (Family, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.TrimPrefix(name, "system")
	for _, f := range Families() {
		if name == f.String() {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown widget family %q", s)
}

// Set implements flag.Value.
func (f *Family) Set(s string) error {
	parsed, err := ParseFamily(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
