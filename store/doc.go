// Package store keeps a history of played scripts in SQLite.
package store
