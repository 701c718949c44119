// Package hestale derives reproducible passwords from three inputs: a
// memorable password, a static label (usually a service name) and a secret
// passphrase.
//
// The same three inputs always produce the same output, so the derived
// password never needs to be stored. The passphrase is hashed into a fixed
// length key, and the label and password are stretched to that length and
// XORed with it.
//
// This is not a vetted key-derivation function. Anyone who can guess the
// passphrase can recompute every derived password.
package hestale
