// Package corrector runs a rule set over every command of a group of sources.
//
// Run reads each source, rewrites its commands on a bounded pool of workers,
// writes changed commands back and records them in the undo journal. Undo
// takes the newest journal batch and puts the old commands back.
//
// A source that cannot be read or written is reported and skipped; the other
// sources are still corrected.
package corrector
