// Package version is the append-only snapshot store for generated documents.
//
// Every generation appends a snapshot to its artifact's history. Exactly one
// snapshot per artifact is active at a time: appending activates the new
// snapshot, and fetching an older one reactivates it (time travel) without
// discarding anything appended after it.
package version
