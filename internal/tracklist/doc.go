package tracklist

// Package tracklist parses timing files: line-oriented records that name a
// start offset, title, and artist per track, optionally preceded by a header
// line naming the source audio file. Cross-entry validation (ordering, range
// checks) is the planner's job, not this package's.
