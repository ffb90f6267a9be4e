// internal/port/port.go
package port

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidDataType is returned when a textual data type cannot be parsed.
var ErrInvalidDataType = errors.New("invalid data type")

// Category is the broad class of a data type.
type Category string

const (
	Media     Category = "Media"
	Control   Category = "Control"
	Reference Category = "Reference"
	Data      Category = "Data"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case Media, Control, Reference, Data:
		return true
	}
	return false
}

// DataType identifies what flows through a port.
type DataType struct {
	Category Category
	Subtype  string
}

// Common data types used by the built-in node variants.
var (
	MediaTexture = DataType{Category: Media, Subtype: "Texture"}
	MediaAudio   = DataType{Category: Media, Subtype: "Audio"}
	MediaMesh    = DataType{Category: Media, Subtype: "Mesh"}
	ControlValue = DataType{Category: Control, Subtype: "Value"}
)

// Compatible reports whether a value of type d may be connected to a port of
// type other.
func (d DataType) Compatible(other DataType) bool {
	return d.Category == other.Category && d.Subtype == other.Subtype
}

// String returns the "Category/Subtype" form.
func (d DataType) String() string {
	return string(d.Category) + "/" + d.Subtype
}

// ParseDataType parses the "Category/Subtype" form produced by String.
func ParseDataType(s string) (DataType, error) {
	category, subtype, ok := strings.Cut(s, "/")
	if !ok || subtype == "" {
		return DataType{}, fmt.Errorf("%w: %q is not of the form Category/Subtype", ErrInvalidDataType, s)
	}
	c := Category(category)
	if !c.Valid() {
		return DataType{}, fmt.Errorf("%w: unknown category %q", ErrInvalidDataType, category)
	}
	return DataType{Category: c, Subtype: subtype}, nil
}

// Port is a named, typed connection point on a node.
type Port struct {
	Name  string
	Label string
	Type  DataType
}

// Set is an ordered collection of ports. Names are unique within a set.
type Set []Port

// Lookup returns the port with the given name.
func (s Set) Lookup(name string) (Port, bool) {
	for _, p := range s {
		if p.Name == name {
			return p, true
		}
	}
	return Port{}, false
}

// Names returns the port names in declaration order.
func (s Set) Names() []string {
	names := make([]string, len(s))
	for i, p := range s {
		names[i] = p.Name
	}
	return names
}
