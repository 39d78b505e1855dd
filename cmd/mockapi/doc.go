// Command mockapi is a local stand-in for the QuickChat backend.
//
// It serves the four endpoints the client calls (login, register, media
// upload and the user listing) from memory, with the same response envelope
// and message strings as the hosted service. Passwords are bcrypt-hashed and
// login issues HS256 JWTs. Point the client at it with
//
//	quickchat --base-url http://127.0.0.1:8080 ...
package main
