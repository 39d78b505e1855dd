// Package media uploads a locally picked file to the backend and returns the
// server-assigned reference.
package media
