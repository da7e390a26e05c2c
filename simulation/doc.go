// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package simulation implements the labelled stand-ins for the cryptographic
and analytics endpoints. Every response carries "simulated": true and none
of the tokens it returns is cryptographically meaningful.

# Encrypted Ballots

SubmitEncrypted asks the configured ProofVerifier about the ballot, then
claims the nullifier for the election. A nullifier can be claimed once:

	engine := simulation.New(st, simulation.WithVerifier(v))
	receipt, err := engine.SubmitEncrypted(req)
	if errors.Is(err, simulation.ErrNullifierUsed) { ... }

The default AcceptingVerifier accepts everything.

# Homomorphic Tally

Tally reads candidate vote counts from the Source and wraps them in
Keccak-256 roots and a random decryption proof.

# Differential Privacy

Query answers histogram, count and mean queries over voter ages with
Gaussian noise. Only the "age" dimension exists.

# Risk-Limiting Audits

PlanAudit computes an initial ballot-polling sample size:

	n = ceil(2 ln(1/alpha) / margin^2), capped at the total
*/
package simulation
