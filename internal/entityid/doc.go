/*
Package entityid generates and parses the structured identifiers shared by
every addressable object in the system: nodes, edges, pipelines, settings
and scene assets.

The canonical form is fixed-width:

	species(1) type(2) archetype(4) '-' uuid(36)

for example `NAUCLIP-550e8400-e29b-41d4-a716-446655440000`. Because the
species, type and archetype are embedded in the string, any component can
classify an object by inspecting its identifier alone.

Validation is purely structural. The UUID suffix is checked for its
punctuation only, never for its random bits.
*/
package entityid
