// Package crypto holds the small primitives the client needs around secrets.
//
// Contents
//
//   - Short fingerprints of secrets for display and logging (Fingerprint)
//   - Passphrase sealing of small values at rest (Seal, Open), using scrypt
//     for key derivation and XChaCha20-Poly1305 for encryption
//
// # Notes
//
// Session tokens are never logged in full; log Fingerprint(token) instead.
// Derived keys are zeroed once a Seal or Open call returns.
package crypto
