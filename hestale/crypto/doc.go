// Package crypto provides the derivation primitives for hestale.
//
// Two building blocks:
//   - Key derivation: SHA-256 of the passphrase, rendered as hex and truncated
//     to KeyLength characters (DeriveKey), or Argon2id + HKDF-SHA256 for the
//     experimental strategy (DeriveStretchedKey)
//   - Mixing: both words are stretched to the key length and XORed with the
//     key one 8-bit code point at a time (Mix)
//
// Nothing here performs I/O or logging. All functions are pure and safe for
// concurrent use.
package crypto
