// Package directory lists registered users from the backend.
package directory
