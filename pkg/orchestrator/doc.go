// Package orchestrator wires the schema loader, the form model builder, theme
// selection and the renderer registry behind a single Generate call.
package orchestrator
