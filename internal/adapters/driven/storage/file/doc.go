// Package file provides JSON file implementations of the corpus and source stores.
//
// The corpus is written as one JSON object mapping document name to its
// page-tagged text, with keys in corpus insertion order. Writes go to a
// temporary file in the same directory which is then renamed over the target,
// so readers never see a partially written file.
package file
