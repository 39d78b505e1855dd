// Package commands defines the quickchat CLI and wires dependencies for
// subcommands.
//
// Commands
//
//   - start     Pick the first screen from the stored session
//   - login     Sign in with email or phone and password
//   - register  Create an account, uploading a profile image first
//   - upload    Upload a file and print its server reference
//   - users     List registered users
//   - logout    Drop the stored session
//   - whoami    Show whether a session is stored
//
// # Implementation
//
// The root command loads Config through viper (file, QUICKCHAT_* env, flags)
// and builds the dependency graph before any subcommand runs. Flow outcomes
// are printed as alerts; only usage errors make the process exit non-zero.
package commands
