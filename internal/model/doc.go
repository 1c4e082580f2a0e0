package model

// Package model defines domain data structures used across the app: tracklist
// entries, planned segments, split jobs, and status enums. Structures are
// immutable after construction and move through explicit state transitions.
