// Package sqlite provides SQLite-backed persistence for proxsearch.
//
// The store keeps search history in a single database file, by default
// ~/.proxsearch/data/history.db. Schema changes are applied from the
// embedded migrations on open.
package sqlite
