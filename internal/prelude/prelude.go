// Package prelude embeds the bundled standard library Schemy source so it
// ships inside the binary rather than being read from the filesystem at
// runtime.
package prelude

import _ "embed"

//go:embed init.ss
var Source string
