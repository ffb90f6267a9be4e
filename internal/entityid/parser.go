// internal/entityid/parser.go
package entityid

import "fmt"

// ParseSpecies returns the species character of id.
func ParseSpecies(id string) (Species, error) {
	if id == "" {
		return 0, fmt.Errorf("%w: identifier is empty", ErrInvalidFormat)
	}
	return Species(id[0]), nil
}

// ParseType returns the 2-character type code of id.
func ParseType(id string) (string, error) {
	if len(id) < 1+typeWidth {
		return "", fmt.Errorf("%w: %q too short to contain a type", ErrInvalidFormat, id)
	}
	return id[1 : 1+typeWidth], nil
}

// ParseArchetype returns the 4-character archetype code of id.
func ParseArchetype(id string) (string, error) {
	if len(id) < dashOffset {
		return "", fmt.Errorf("%w: %q too short to contain an archetype", ErrInvalidFormat, id)
	}
	return id[1+typeWidth : dashOffset], nil
}

// ParseUUID returns everything after the dash at offset 7.
func ParseUUID(id string) (string, error) {
	if len(id) <= dashOffset || id[dashOffset] != '-' {
		return "", fmt.Errorf("%w: dash expected at position %d in %q", ErrInvalidFormat, dashOffset, id)
	}
	return id[dashOffset+1:], nil
}

// Parse validates id and splits it into its four fields.
func Parse(id string) (ID, error) {
	if !IsValid(id) {
		return ID{}, fmt.Errorf("%w: %q", ErrInvalidFormat, id)
	}
	return ID{
		Species:   Species(id[0]),
		Type:      id[1 : 1+typeWidth],
		Archetype: id[1+typeWidth : dashOffset],
		UUID:      id[dashOffset+1:],
	}, nil
}

// IsValid reports whether id has the canonical structure. It never fails;
// any malformed input, including the empty string, yields false.
func IsValid(id string) bool {
	if len(id) != Length || id[dashOffset] != '-' {
		return false
	}
	if !Species(id[0]).Valid() {
		return false
	}
	if !isAlnum(id[1:dashOffset]) {
		return false
	}
	u := id[dashOffset+1:]
	if len(u) != uuidLength {
		return false
	}
	return u[8] == '-' && u[13] == '-' && u[18] == '-' && u[23] == '-'
}

// IsSpecies compares the first character of id with species.
func IsSpecies(id string, species Species) bool {
	return id != "" && id[0] == byte(species)
}

// IsNodeID reports whether id belongs to the Node species.
func IsNodeID(id string) bool { return IsSpecies(id, Node) }

// IsPipelineID reports whether id belongs to the Pipeline species.
func IsPipelineID(id string) bool { return IsSpecies(id, Pipeline) }

// IsEdgeID reports whether id belongs to the Edge species.
func IsEdgeID(id string) bool { return IsSpecies(id, Edge) }
