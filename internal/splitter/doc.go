package splitter

// Package splitter orchestrates one run of the pipeline: resolve the source
// (fetching it when the timing file names a URL), probe its duration, validate
// the plan, then cut/name/tag every segment. The whole plan is validated
// before the first extraction starts, so a bad timing file never leaves
// partial output behind.
