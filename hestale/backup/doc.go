// Package backup splits a passphrase into Reed-Solomon shares and recovers it.
//
// The normalized passphrase is packed into a payload, LZ4-compressed only
// when that makes it smaller, and split into data and parity shards. Every
// shard becomes a single line of text (a share) that can be printed or
// written down. Any DataShards of the shares are enough to recover the
// passphrase; with 3 data and 2 parity shards, any 2 shares may be lost.
//
// Shares are not encrypted. A single share leaks part of the passphrase, so
// they should be stored in separate places.
//
// This implementation uses the klauspost/reedsolomon and pierrec/lz4 libraries.
package backup
