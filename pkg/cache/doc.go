// Package cache keeps client-side views of the service's three resource
// collections consistent across mutations.
//
// The parking service derives state across collections: checking a car in
// or out changes spot occupancy and the owning parking's available-spot
// count, and editing a parking's capacity changes spot availability. A view
// must therefore never combine a fresh copy of one collection with a stale
// copy of another. The [Coordinator] owns one cached collection per
// resource kind and applies a fixed invalidation table after every
// successful mutation: the affected collections are evicted and refetched
// before the mutation returns, so any caller that awaits a mutation reads
// its own writes across all three collections.
//
// Reads are served from cache when present and otherwise fetched with
// at-most-one request in flight per kind; concurrent readers share the one
// in-flight result. The Coordinator is the sole writer of cache entries.
//
// A Coordinator's contents can be exported with [Coordinator.Export] or
// [Coordinator.ExportToFile] to warm-start the next process. Exported data
// reflects remote state at export time and is trusted only until the first
// mutation or expiry.
package cache
