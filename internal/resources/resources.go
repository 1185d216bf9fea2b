// Package resources holds the files bundled into the plugin binary.
package resources

import "embed"

// LangDir is the directory of the bundled translation files inside FS.
const LangDir = "lang"

//go:embed lang
var FS embed.FS
