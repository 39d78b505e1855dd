// Package bootstrap picks the first screen from the persisted session and
// handles logout.
package bootstrap
