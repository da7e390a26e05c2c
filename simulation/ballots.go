// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package simulation

import (
	"fmt"

	"github.com/danielhkuo/ballotbox/models"
	"github.com/danielhkuo/ballotbox/token"
)

// SubmitEncrypted checks the ballot's proof and nullifier and returns an
// acceptance receipt. The ciphertext is never opened.
func (e *Engine) SubmitEncrypted(req models.EncryptedBallotRequest) (models.EncryptedBallotResponse, error) {
	if err := e.verifier.Verify(req); err != nil {
		return models.EncryptedBallotResponse{}, fmt.Errorf("%w: %v", ErrInvalidProof, err)
	}

	if err := e.claimNullifier(req.ElectionID, req.Nullifier); err != nil {
		return models.EncryptedBallotResponse{}, err
	}

	ballotID, err := token.PrefixedID("b", 8)
	if err != nil {
		return models.EncryptedBallotResponse{}, err
	}

	return models.EncryptedBallotResponse{
		BallotID:   ballotID,
		Status:     "accepted",
		Nullifier:  token.Keccak256Hex([]byte(req.ElectionID), []byte(req.Nullifier)),
		AnchoredAt: e.now().UTC(),
		Simulated:  true,
	}, nil
}

// SubmitRanked accepts a ranked-choice ballot without counting it
func (e *Engine) SubmitRanked(req models.RankedBallotRequest) (models.RankedBallotResponse, error) {
	ballotID, err := token.PrefixedID("rb", 8)
	if err != nil {
		return models.RankedBallotResponse{}, err
	}

	return models.RankedBallotResponse{
		BallotID:  ballotID,
		Status:    "accepted",
		Simulated: true,
	}, nil
}
