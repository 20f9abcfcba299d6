/*
Package registry tracks in-flight read executions that have been asked
to cancel.

Cancellation is cooperative and poll-based: an execution checks the
registry once per page fetch, so cancellation latency is bounded by one
page-fetch round trip. Requesting cancellation for an id that has already
finished is a harmless no-op.

The registry is thread-safe and injectable; construct one with New() and
pass it to each executor.
*/
package registry
