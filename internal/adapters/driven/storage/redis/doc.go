// Package redis provides Redis-backed implementations of the corpus and source stores.
//
// The corpus lives under two keys: a list holding document names in insertion
// order and a hash mapping each name to its page-tagged text. ReplaceAll
// rewrites both keys inside one MULTI/EXEC block and LoadAll reads them inside
// another, so readers observe either the old or the new corpus.
package redis
