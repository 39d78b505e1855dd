// Package app wires application dependencies for the CLI.
//
// LoadConfig resolves Config from a config file, QUICKCHAT_* environment
// variables and bound flags. NewWire builds the logger, transport, key-value
// backend, session store and flow services from it, exposing them via the
// Wire struct for commands to use.
package app
