// Package deskmates is the Go client for the Deskmates digital employee
// platform API (marketplace, chat and knowledge base management). Every call
// rides a single request pipeline that layers:
//
//   - Identity headers sourced from an injected Session (X-User-ID / X-Employee-ID)
//   - snake_case <-> camelCase payload normalization, transparent to callers
//   - Per-attempt timeouts raced against the transport
//   - Bounded retries with exponential backoff (4xx responses never retry)
//   - A single typed error (*APIError) for every failure mode
//
// Design goals:
//   - Small surface area: functional options configure everything
//   - Safe concurrent use of a single *Client instance
//   - Pluggable Logger / Prometheus metrics, silent by default
//
// Typical usage:
//
//	client := deskmates.New("https://api.deskmates.io/api/v1",
//	    deskmates.WithRetryCount(3),
//	    deskmates.WithTimeout(30*time.Second),
//	    deskmates.WithSession(deskmates.StaticSession{User: "u-42", Employee: "emp-7"}),
//	)
//	bases, err := client.Knowledge.ListBases(ctx)
//
// Chat supports incremental responses through Client.Stream, which delivers
// raw "data:" framed chunks to a callback until the [DONE] sentinel arrives.
// The streaming path is single-attempt: it bypasses both the retry loop and
// the per-attempt timeout.
package deskmates
