package types

// Metadata represents the metadata of an extension entry point
type Metadata struct {
	// Name is the name of the extension
	Name string `json:"name,omitempty"`
	// Version is the version of the extension
	Version string `json:"version,omitempty"`
	// Description is the description of the extension
	Description string `json:"description,omitempty"`
	// Point is the identifier of the extension point the entry point renders into
	Point string `json:"point,omitempty"`
}
