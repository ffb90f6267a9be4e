// internal/entityid/generate.go
package entityid

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Generate builds a new canonical identifier. The type and archetype must be
// 1-2 and 1-4 alphanumeric characters; shorter values are padded with '0'
// after the supplied characters.
func Generate(species Species, typ, archetype string) (string, error) {
	if !species.Valid() {
		return "", fmt.Errorf("%w: unknown species %q", ErrInvalidArgument, rune(species))
	}
	if err := validateField("type", typ, typeWidth); err != nil {
		return "", err
	}
	if err := validateField("archetype", archetype, archetypeWidth); err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.Grow(Length)
	sb.WriteByte(byte(species))
	sb.WriteString(pad(typ, typeWidth))
	sb.WriteString(pad(archetype, archetypeWidth))
	sb.WriteByte('-')
	sb.WriteString(uuid.NewString())
	return sb.String(), nil
}

// GenerateNode generates an identifier of the Node species.
func GenerateNode(typ, archetype string) (string, error) {
	return Generate(Node, typ, archetype)
}

// GeneratePipeline generates an identifier of the Pipeline species.
func GeneratePipeline(typ, archetype string) (string, error) {
	return Generate(Pipeline, typ, archetype)
}

// GenerateSettings generates an identifier of the Settings species.
func GenerateSettings(typ, archetype string) (string, error) {
	return Generate(Settings, typ, archetype)
}

// GenerateEdge generates an identifier of the Edge species.
func GenerateEdge(typ, archetype string) (string, error) {
	return Generate(Edge, typ, archetype)
}

// GenerateController generates a Controller identifier. Controllers carry no
// archetype, so it is fixed to "0000".
func GenerateController(typ string) (string, error) {
	return Generate(Controller, typ, "0000")
}

func validateField(name, value string, width int) error {
	if value == "" || len(value) > width {
		return fmt.Errorf("%w: %s must be 1-%d characters, got %q", ErrInvalidArgument, name, width, value)
	}
	if !isAlnum(value) {
		return fmt.Errorf("%w: %s must be alphanumeric, got %q", ErrInvalidArgument, name, value)
	}
	return nil
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return s + strings.Repeat(string(padChar), width-len(s))
}

func isAlnum(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z') {
			return false
		}
	}
	return true
}
