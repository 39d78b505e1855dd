// Package login runs the login flow: guard the form, post credentials,
// classify the backend's reply and persist the session token.
package login
