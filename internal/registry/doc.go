// Package registry loads the membrane product catalog from a TOML file and
// serves it to the simulator.
//
// The catalog is loaded once at startup; a missing or unparsable file is a
// fatal configuration error. An optional fsnotify watcher reloads the catalog
// when the file changes, keeping the previous catalog if the new content does
// not parse.
package registry
