// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package token generates the opaque identifiers and digests returned by the
simulated endpoints.

# Random IDs

	id, err := token.GenerateID(16)          // 32 hex characters
	ballotID, err := token.PrefixedID("b", 8) // "b_" + 16 hex characters

# Opaque Tokens

Random bytes rendered as standard base64, used for decryption proofs and
audit sampling seeds:

	proof, err := token.Opaque(32)

# Digests

Legacy Keccak-256 (the Ethereum variant) from golang.org/x/crypto/sha3:

	root := token.Keccak256Hex([]byte("election-1"), tallyBytes)

None of these values carry cryptographic meaning for the election; they
only have the shape a real implementation would return.
*/
package token
