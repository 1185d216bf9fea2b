package domain

import (
	"go.minekube.com/common/minecraft/component"
)

// Resolvable is text whose content is only decided when the display layer
// renders it for a viewer. Implementations must not cache the result: the same
// value may be resolved again for another viewer or after the language order
// changed.
type Resolvable interface {
	Resolve(language string) (component.Component, error)
}

// Named carries named format arguments among positional ones, e.g.
// Tr("help.detailed", Named{"prefix": "!!blossom"}).
type Named map[string]any

// Literal is already-resolved plain text.
type Literal string

func (l Literal) Resolve(string) (component.Component, error) {
	return &component.Text{Content: string(l)}, nil
}

func (l Literal) String() string {
	return string(l)
}
