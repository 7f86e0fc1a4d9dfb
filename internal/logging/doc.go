// Package logging wires slog with a compact console handler for interactive
// use and a JSON handler for machine consumption. Attr aliases keep call
// sites free of direct slog imports.
package logging
