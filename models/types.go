// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"encoding/json"
	"time"
)

// Vote modes
const (
	ModeSimple   = "simple"
	ModeWeighted = "weighted"
)

// Domain types

type Voter struct {
	VoterID   int       `json:"voter_id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Age       int       `json:"age"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	HasVoted  bool      `json:"has_voted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProfileUpdated reports whether the voter changed their profile after registering
func (v Voter) ProfileUpdated() bool {
	return !v.UpdatedAt.Equal(v.CreatedAt)
}

type Candidate struct {
	CandidateID int       `json:"candidate_id"`
	FullName    string    `json:"full_name"`
	PartyName   string    `json:"party_name"`
	Age         int       `json:"age"`
	Bio         string    `json:"bio,omitempty"`
	VoteCount   int       `json:"vote_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type Vote struct {
	VoteID      int       `json:"vote_id"`
	VoterID     int       `json:"voter_id"`
	CandidateID int       `json:"candidate_id"`
	Timestamp   time.Time `json:"timestamp"`
	Weight      int       `json:"weight"`
}

type TimelineEntry struct {
	VoteID    int       `json:"vote_id"`
	Timestamp time.Time `json:"timestamp"`
}

// VoterPatch carries the fields of a partial voter update; nil means unchanged
type VoterPatch struct {
	FullName *string
	Age      *int
	Address  *string
	Phone    *string
}

// Request types

type CreateVoterRequest struct {
	FullName string `json:"full_name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Age      int    `json:"age" validate:"required,gte=18,lte=120"`
	Address  string `json:"address" validate:"required,min=5,max=200"`
	Phone    string `json:"phone" validate:"required,phone"`
}

type UpdateVoterRequest struct {
	FullName *string `json:"full_name" validate:"omitnil,min=2,max=100"`
	Age      *int    `json:"age" validate:"omitnil,gte=18,lte=120"`
	Address  *string `json:"address" validate:"omitnil,min=5,max=200"`
	Phone    *string `json:"phone" validate:"omitnil,phone"`
}

// Empty reports whether the update carries no fields at all
func (r UpdateVoterRequest) Empty() bool {
	return r.FullName == nil && r.Age == nil && r.Address == nil && r.Phone == nil
}

func (r UpdateVoterRequest) Patch() VoterPatch {
	return VoterPatch{
		FullName: r.FullName,
		Age:      r.Age,
		Address:  r.Address,
		Phone:    r.Phone,
	}
}

type CreateCandidateRequest struct {
	FullName  string `json:"full_name" validate:"required,min=2,max=100"`
	PartyName string `json:"party_name" validate:"required,min=2,max=50"`
	Age       int    `json:"age" validate:"required,gte=25,lte=120"`
	Bio       string `json:"bio" validate:"omitempty,max=500"`
}

type CastVoteRequest struct {
	VoterID     int `json:"voter_id" validate:"required,gt=0"`
	CandidateID int `json:"candidate_id" validate:"required,gt=0"`
}

// Simulated endpoint requests

type EncryptedBallotRequest struct {
	ElectionID  string `json:"election_id" validate:"required"`
	Ciphertext  string `json:"ciphertext" validate:"required"`
	ZKProof     string `json:"zk_proof" validate:"required"`
	VoterPubkey string `json:"voter_pubkey" validate:"required"`
	Nullifier   string `json:"nullifier" validate:"required"`
	Signature   string `json:"signature" validate:"required"`
}

type RankedBallotRequest struct {
	ElectionID string `json:"election_id" validate:"required"`
	VoterID    int    `json:"voter_id" validate:"required,gt=0"`
	Ranking    []int  `json:"ranking" validate:"required,min=1,unique,dive,gt=0"`
	Timestamp  string `json:"timestamp" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

type DPQuery struct {
	Type      string         `json:"type" validate:"required,oneof=histogram count mean"`
	Dimension string         `json:"dimension" validate:"required"`
	Buckets   []string       `json:"buckets" validate:"omitempty,dive,required"`
	Filter    map[string]any `json:"filter"`
}

type DPQueryRequest struct {
	ElectionID string   `json:"election_id" validate:"required"`
	Query      *DPQuery `json:"query" validate:"required"`
	Epsilon    float64  `json:"epsilon" validate:"required,gt=0,lte=10"`
	Delta      float64  `json:"delta" validate:"required,gt=0,lte=1"`
}

type ReportedTally struct {
	CandidateID int  `json:"candidate_id" validate:"required,gt=0"`
	Votes       *int `json:"votes" validate:"required,gte=0"`
}

type AuditPlanRequest struct {
	ElectionID      string          `json:"election_id" validate:"required"`
	ReportedTallies []ReportedTally `json:"reported_tallies" validate:"required,min=2,dive"`
	RiskLimitAlpha  float64         `json:"risk_limit_alpha" validate:"required,gt=0,lte=0.5"`
	AuditType       string          `json:"audit_type" validate:"required,oneof=ballot_polling comparison ballot_comparison"`
	Stratification  map[string]any  `json:"stratification"`
}

type HomomorphicTallyRequest struct {
	ElectionID           string            `json:"election_id" validate:"required"`
	TrusteeDecryptShares []json.RawMessage `json:"trustee_decrypt_shares" validate:"required,min=1"`
}

// Response types

type CreateVoterResponse struct {
	VoterID int    `json:"voter_id"`
	Message string `json:"message"`
}

type ListVotersResponse struct {
	Total  int     `json:"total"`
	Voters []Voter `json:"voters"`
}

type UpdateVoterResponse struct {
	Message string `json:"message"`
	Voter   Voter  `json:"voter"`
}

type DeleteResponse struct {
	Message string `json:"message"`
	ID      int    `json:"id"`
}

type CreateCandidateResponse struct {
	CandidateID int    `json:"candidate_id"`
	FullName    string `json:"full_name"`
	PartyName   string `json:"party_name"`
	VoteCount   int    `json:"vote_count"`
	Message     string `json:"message"`
}

type ListCandidatesResponse struct {
	Total      int         `json:"total"`
	Candidates []Candidate `json:"candidates"`
}

type FilterCandidatesResponse struct {
	Party      string      `json:"party"`
	Total      int         `json:"total"`
	Candidates []Candidate `json:"candidates"`
}

type CandidateVotesResponse struct {
	CandidateID int `json:"candidate_id"`
	Votes       int `json:"votes"`
	Ballots     int `json:"ballots"`
}

type PartiesResponse struct {
	Total   int      `json:"total"`
	Parties []string `json:"parties"`
}

type CastVoteResponse struct {
	VoteID      int       `json:"vote_id"`
	VoterID     int       `json:"voter_id"`
	CandidateID int       `json:"candidate_id"`
	Timestamp   time.Time `json:"timestamp"`
	Weight      int       `json:"weight"`
}

type TimelineResponse struct {
	CandidateID int             `json:"candidate_id"`
	Timeline    []TimelineEntry `json:"timeline"`
}

type RangeResponse struct {
	CandidateID int    `json:"candidate_id"`
	From        string `json:"from"`
	To          string `json:"to"`
	VotesGained int    `json:"votes_gained"`
}

// Result types

type LeaderboardEntry struct {
	Rank          int    `json:"rank"` // 1-indexed ranking
	CandidateID   int    `json:"candidate_id"`
	CandidateName string `json:"candidate_name"`
	PartyName     string `json:"party_name"`
	Votes         int    `json:"votes"`
	Percentage    string `json:"percentage"`
}

type Results struct {
	TotalVotes      int                `json:"total_votes"`
	TotalBallots    int                `json:"total_ballots"`
	TotalCandidates int                `json:"total_candidates"`
	Leader          *LeaderboardEntry  `json:"winner"`
	Leaderboard     []LeaderboardEntry `json:"leaderboard"`
}

type Winner struct {
	Winners   []LeaderboardEntry `json:"winners"`
	VoteCount int                `json:"vote_count"`
	IsTie     bool               `json:"is_tie"`
}

type ResultSnapshot struct {
	ID           string    `json:"id"`
	ComputedAt   time.Time `json:"computed_at"`
	TotalVotes   int       `json:"total_votes"`
	TotalBallots int       `json:"total_ballots"`
	Results      Results   `json:"results"`
}

type ListSnapshotsResponse struct {
	Total     int              `json:"total"`
	Snapshots []ResultSnapshot `json:"snapshots"`
}

// Simulated endpoint responses

type EncryptedBallotResponse struct {
	BallotID   string    `json:"ballot_id"`
	Status     string    `json:"status"`
	Nullifier  string    `json:"nullifier"`
	AnchoredAt time.Time `json:"anchored_at"`
	Simulated  bool      `json:"simulated"`
}

type RankedBallotResponse struct {
	BallotID  string `json:"ballot_id"`
	Status    string `json:"status"`
	Simulated bool   `json:"simulated"`
}

type CandidateTally struct {
	CandidateID int `json:"candidate_id"`
	Votes       int `json:"votes"`
}

type TallyTransparency struct {
	BallotMerkleRoot string `json:"ballot_merkle_root"`
	TallyMethod      string `json:"tally_method"`
	Threshold        string `json:"threshold"`
}

type HomomorphicTallyResponse struct {
	ElectionID         string            `json:"election_id"`
	EncryptedTallyRoot string            `json:"encrypted_tally_root"`
	CandidateTallies   []CandidateTally  `json:"candidate_tallies"`
	DecryptionProof    string            `json:"decryption_proof"`
	Transparency       TallyTransparency `json:"transparency"`
	Simulated          bool              `json:"simulated"`
}

type PrivacyBudget struct {
	Epsilon float64 `json:"epsilon"`
	Delta   float64 `json:"delta"`
}

type DPQueryResponse struct {
	Answer                 any           `json:"answer"`
	NoiseMechanism         string        `json:"noise_mechanism"`
	EpsilonSpent           float64       `json:"epsilon_spent"`
	Delta                  float64       `json:"delta"`
	RemainingPrivacyBudget PrivacyBudget `json:"remaining_privacy_budget"`
	CompositionMethod      string        `json:"composition_method"`
	Simulated              bool          `json:"simulated"`
}

type AuditPlanResponse struct {
	AuditID           string `json:"audit_id"`
	InitialSampleSize int    `json:"initial_sample_size"`
	SamplingPlan      string `json:"sampling_plan"`
	Test              string `json:"test"`
	Status            string `json:"status"`
	Simulated         bool   `json:"simulated"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    string    `json:"uptime"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Stack   string `json:"stack,omitempty"`
}
