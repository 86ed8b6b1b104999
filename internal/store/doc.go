// Package store provides durable storage for respondent sessions.
//
// The flow engine itself is pure and owns no state; this package is the
// persistence collaborator around it. Sessions are stored as an
// append-only log of answer events, stamped with a per-session logical
// sequence number. Rebuilding the answer map in seq order and re-driving
// the navigator over it must reproduce the recorded path exactly - the
// replay package relies on that property.
//
// SQLite with WAL mode. Single writer per database; answer values are
// stored in canonical JSON so byte comparison is meaningful.
package store
