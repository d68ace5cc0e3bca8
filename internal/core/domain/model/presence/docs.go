// Package presence provides the courier presence entry: the ephemeral record
// of a courier's live connection and last known position. Entries are never
// persisted and are rebuilt from connection traffic after a restart.
package presence
