// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"slices"
	"strings"
	"time"

	"github.com/danielhkuo/ballotbox/models"
)

// VoterRegistry owns voter records. It performs no uniqueness checks and no
// locking; Store does both.
type VoterRegistry struct {
	ids    *Allocator
	voters map[int]*models.Voter
	order  []int // insertion order
}

func NewVoterRegistry() *VoterRegistry {
	return &VoterRegistry{
		ids:    NewAllocator(),
		voters: make(map[int]*models.Voter),
	}
}

// Create stores a new voter with a freshly allocated id
func (r *VoterRegistry) Create(req models.CreateVoterRequest, now time.Time) models.Voter {
	v := &models.Voter{
		VoterID:   r.ids.Next(),
		FullName:  req.FullName,
		Email:     req.Email,
		Age:       req.Age,
		Address:   req.Address,
		Phone:     req.Phone,
		HasVoted:  false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	r.voters[v.VoterID] = v
	r.order = append(r.order, v.VoterID)

	return *v
}

func (r *VoterRegistry) FindByID(id int) (models.Voter, bool) {
	v, ok := r.voters[id]
	if !ok {
		return models.Voter{}, false
	}
	return *v, true
}

// FindByEmail does a case-insensitive linear scan
func (r *VoterRegistry) FindByEmail(email string) (models.Voter, bool) {
	email = strings.TrimSpace(email)
	for _, id := range r.order {
		v := r.voters[id]
		if strings.EqualFold(v.Email, email) {
			return *v, true
		}
	}
	return models.Voter{}, false
}

func (r *VoterRegistry) Exists(id int) bool {
	_, ok := r.voters[id]
	return ok
}

// All returns copies of every voter in insertion order
func (r *VoterRegistry) All() []models.Voter {
	out := make([]models.Voter, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.voters[id])
	}
	return out
}

func (r *VoterRegistry) Count() int {
	return len(r.voters)
}

// Update applies the non-nil fields of patch and refreshes updated_at
func (r *VoterRegistry) Update(id int, patch models.VoterPatch, now time.Time) (models.Voter, bool) {
	v, ok := r.voters[id]
	if !ok {
		return models.Voter{}, false
	}

	if patch.FullName != nil {
		v.FullName = *patch.FullName
	}
	if patch.Age != nil {
		v.Age = *patch.Age
	}
	if patch.Address != nil {
		v.Address = *patch.Address
	}
	if patch.Phone != nil {
		v.Phone = *patch.Phone
	}
	v.UpdatedAt = now

	return *v, true
}

func (r *VoterRegistry) Delete(id int) bool {
	if _, ok := r.voters[id]; !ok {
		return false
	}
	delete(r.voters, id)
	r.order = slices.DeleteFunc(r.order, func(x int) bool { return x == id })
	return true
}

// MarkAsVoted sets has_voted. The flag is never cleared.
func (r *VoterRegistry) MarkAsVoted(id int) bool {
	v, ok := r.voters[id]
	if !ok {
		return false
	}
	v.HasVoted = true
	return true
}
