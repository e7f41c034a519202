// Package prefs resolves the effective delivery language and channel for a
// recipient.
//
// Resolution walks a fixed priority chain: explicit per-request override,
// stored preference, recipient profile, system default (French over email).
// The dispatch core only reads preferences; mutation happens through the
// Store interface owned by the surrounding application.
package prefs
