// Package register runs the sign-up flow.
//
// The form is validated client-side in a fixed order, the profile image is
// uploaded through the media service, and only then is the account created.
// The register endpoint is never called when validation or the upload fails.
package register
