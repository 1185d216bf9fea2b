package domain

// Metadata describes the plugin to its host.
type Metadata struct {
	ID      string
	Name    string
	Version string
}
