// Package domain holds the vocabulary shared across layers.
package domain

// ContentOwner is the author whose articles this service exposes. The
// whole index is scoped to this value; it is a fixed business filter,
// never user-controllable.
const ContentOwner = "Jeffrey Rengifo"

// Hit is one matched document as returned by the engine, keyed by
// stored field name. Absent fields are missing keys; a JSON null
// decodes to the empty string.
type Hit map[string]string
