// Package store provides the persisted key-value capability and the session
// store built on it.
//
// Backends:
//   - FileKV: a JSON map in a single file under the user's home directory,
//     written atomically; values are optionally sealed with a passphrase.
//   - RedisKV: a Redis hash, for clients that share device state.
//   - MemoryKV: process-local, for tests and throwaway runs.
//
// SessionStore keeps the one session token under a fixed key. All types are
// safe for concurrent use.
package store
