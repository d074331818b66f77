// Package models defines the persisted domain models for settlr.
//
//   - Run: a stored settlement run with its participants, balances, and
//     transfers. Runs are write-once; the engine output is stored next to
//     the inputs so exports never recompute.
//   - User: a registered account that owns runs.
//
// Participants inside a run are identified by name strings, not user
// accounts: the people splitting a bill usually aren't all registered,
// and a settlement run only needs their names to be unique within itself.
//
// The engine has its own input/output types (internal/engine); these
// models are the storage shape, with amounts flattened to int64 cents so
// they map directly onto SQLite integer columns.
package models
