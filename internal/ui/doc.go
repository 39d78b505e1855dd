// Package ui provides terminal-backed implementations of the collaborators
// the client flows need from a front-end: screen navigation, an image
// picker and a presenter for flow outcomes.
package ui
