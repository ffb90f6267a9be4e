// internal/entityid/types.go
package entityid

import "errors"

const (
	// Length is the fixed length of a canonical identifier.
	Length = 44

	typeWidth      = 2
	archetypeWidth = 4
	dashOffset     = 1 + typeWidth + archetypeWidth
	uuidLength     = 36
	padChar        = '0'
)

var (
	// ErrInvalidArgument is returned when generation inputs are malformed.
	ErrInvalidArgument = errors.New("invalid identifier argument")
	// ErrInvalidFormat is returned when a string cannot be parsed as an identifier.
	ErrInvalidFormat = errors.New("invalid identifier format")
)

// Species is the single-character top-level category of an identifier.
type Species byte

const (
	// Core entities
	Node       Species = 'N'
	Controller Species = 'C'
	Pipeline   Species = 'P'
	Settings   Species = 'S'
	Edge       Species = 'E'
	Rule       Species = 'R'

	// Media and assets
	Media           Species = 'M'
	MediaAsset      Species = 'A'
	Model           Species = 'O'
	SceneGraphAsset Species = 'G'

	// UI and interaction
	UI        Species = 'U'
	UIElement Species = 'L'
	Widget    Species = 'W'
	Frame     Species = 'F'
	Dock      Species = 'D'
	Monitor   Species = 'V'

	// Execution and events
	Task    Species = 'T'
	Event   Species = 'Z'
	Session Species = 'J'

	// Connectivity
	API                Species = 'I'
	APIBinding         Species = 'Y'
	InteractionBinding Species = 'B'
	TransportStream    Species = 'Q'
	IPStream           Species = 'K'
	Bluetooth          Species = 'H'

	// Systems
	Manager  Species = 'X'
	Profile  Species = '0'
	Hardware Species = '1'

	// Advanced
	WASM         Species = '2'
	Conversation Species = '3'
	File         Species = '4'
	CSP          Species = '5'
	CDN          Species = '6'
	Extension    Species = '7'
)

var speciesNames = map[Species]string{
	Node:               "Node",
	Controller:         "Controller",
	Pipeline:           "Pipeline",
	Settings:           "Settings",
	Edge:               "Edge",
	Rule:               "Rule",
	Media:              "Media",
	MediaAsset:         "MediaAsset",
	Model:              "Model",
	SceneGraphAsset:    "SceneGraphAsset",
	UI:                 "UI",
	UIElement:          "UIElement",
	Widget:             "Widget",
	Frame:              "Frame",
	Dock:               "Dock",
	Monitor:            "Monitor",
	Task:               "Task",
	Event:              "Event",
	Session:            "Session",
	API:                "API",
	APIBinding:         "APIBinding",
	InteractionBinding: "InteractionBinding",
	TransportStream:    "TransportStream",
	IPStream:           "IPStream",
	Bluetooth:          "Bluetooth",
	Manager:            "Manager",
	Profile:            "Profile",
	Hardware:           "Hardware",
	WASM:               "WASM",
	Conversation:       "Conversation",
	File:               "File",
	CSP:                "CSP",
	CDN:                "CDN",
	Extension:          "Extension",
}

// Valid reports whether s belongs to the species alphabet.
func (s Species) Valid() bool {
	_, ok := speciesNames[s]
	return ok
}

// String returns the species name, or the raw character for unknown values.
func (s Species) String() string {
	if name, ok := speciesNames[s]; ok {
		return name
	}
	return string(rune(s))
}

// ID is the structured representation of a canonical identifier.
type ID struct {
	Species   Species
	Type      string
	Archetype string
	UUID      string
}

// String serializes the ID into its canonical form.
func (id ID) String() string {
	return string(rune(id.Species)) + id.Type + id.Archetype + "-" + id.UUID
}
