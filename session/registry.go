// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"slices"
	"strings"

	"github.com/danielhkuo/live-poll/models"
)

// Registry tracks one participant per connection.
// Only students count toward the roster.
type Registry struct {
	order        []string
	participants map[string]models.Participant
}

func NewRegistry() *Registry {
	return &Registry{participants: make(map[string]models.Participant)}
}

// Register inserts or overwrites the participant for a connection.
// It reports whether the student roster changed.
func (r *Registry) Register(connID, name, role string) bool {
	prev, existed := r.participants[connID]
	if !existed {
		r.order = append(r.order, connID)
	}

	r.participants[connID] = models.Participant{
		ID:   connID,
		Name: strings.TrimSpace(name),
		Role: role,
	}

	return role == models.RoleStudent || (existed && prev.Role == models.RoleStudent)
}

// Remove deletes the participant and reports whether it was a student
func (r *Registry) Remove(connID string) bool {
	p, ok := r.participants[connID]
	if !ok {
		return false
	}

	delete(r.participants, connID)
	if i := slices.Index(r.order, connID); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}

	return p.Role == models.RoleStudent
}

func (r *Registry) Get(connID string) (models.Participant, bool) {
	p, ok := r.participants[connID]
	return p, ok
}

func (r *Registry) IsStudent(connID string) bool {
	p, ok := r.participants[connID]
	return ok && p.Role == models.RoleStudent
}

// Students returns the roster in registration order
func (r *Registry) Students() []models.ParticipantEntry {
	list := []models.ParticipantEntry{}
	for _, id := range r.order {
		p := r.participants[id]
		if p.Role != models.RoleStudent {
			continue
		}
		list = append(list, models.ParticipantEntry{ID: p.ID, Name: p.Name})
	}
	return list
}

// Count returns the number of registered students
func (r *Registry) Count() int {
	n := 0
	for _, p := range r.participants {
		if p.Role == models.RoleStudent {
			n++
		}
	}
	return n
}
