// Package output renders backend objects for the terminal: tables, detail
// views, JSON/YAML, coloured status and transfer progress.
package output
