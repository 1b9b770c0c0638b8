// Package formats registers the filing formats with the core registry.
// Import this package for its side effects to make every format available:
//
//	import _ "github.com/JonMunkholm/parseos/internal/core/formats"
//
// Each file owns one receiving system. Encoders are pure functions from
// rows to lines; the transforms wire header resolution and canonicalization
// in front of them.
package formats
