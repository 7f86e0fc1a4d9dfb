// Package services defines the shared error taxonomy used across pipeline
// stages. Sentinel errors mark the failure class (missing input, bad
// configuration, media-tool failure, output persistence) and Wrap attaches
// stage and operation context without losing the marker.
package services
