// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package simulation

import (
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/danielhkuo/ballotbox/models"
	"github.com/danielhkuo/ballotbox/token"
)

const (
	tallyMethod    = "threshold_paillier"
	tallyThreshold = "3-of-5"
)

// Tally reports the plaintext counts as if they had been decrypted from a
// homomorphic aggregate. The tally root digests those counts and the merkle
// root commits to every recorded ballot in vote_id order.
func (e *Engine) Tally(req models.HomomorphicTallyRequest) (models.HomomorphicTallyResponse, error) {
	candidates := e.source.Candidates()

	tallies := make([]models.CandidateTally, len(candidates))
	for i, c := range candidates {
		tallies[i] = models.CandidateTally{CandidateID: c.CandidateID, Votes: c.VoteCount}
	}

	ballots := e.source.Ballots()
	leaves := make([][]byte, len(ballots))
	for i, b := range ballots {
		leaves[i] = ballotLeaf(b)
	}

	encoded, err := json.Marshal(tallies)
	if err != nil {
		return models.HomomorphicTallyResponse{}, err
	}

	proof, err := token.Opaque(32)
	if err != nil {
		return models.HomomorphicTallyResponse{}, err
	}

	return models.HomomorphicTallyResponse{
		ElectionID:         req.ElectionID,
		EncryptedTallyRoot: token.Keccak256Hex([]byte(req.ElectionID), encoded),
		CandidateTallies:   tallies,
		DecryptionProof:    proof,
		Transparency: models.TallyTransparency{
			BallotMerkleRoot: "0x" + hex.EncodeToString(merkleRoot(leaves)),
			TallyMethod:      tallyMethod,
			Threshold:        tallyThreshold,
		},
		Simulated: true,
	}, nil
}

func ballotLeaf(v models.Vote) []byte {
	fields := strings.Join([]string{
		strconv.Itoa(v.VoteID),
		strconv.Itoa(v.VoterID),
		strconv.Itoa(v.CandidateID),
		strconv.Itoa(v.Weight),
		strconv.FormatInt(v.Timestamp.UnixMilli(), 10),
	}, ":")
	return token.Keccak256([]byte(fields))
}

// merkleRoot pairs leaves level by level, carrying an odd last node up unchanged
func merkleRoot(level [][]byte) []byte {
	if len(level) == 0 {
		return token.Keccak256()
	}

	for len(level) > 1 {
		next := make([][]byte, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			if i+1 == len(level) {
				next = append(next, level[i])
				continue
			}
			next = append(next, token.Keccak256(level[i], level[i+1]))
		}
		level = next
	}
	return level[0]
}
