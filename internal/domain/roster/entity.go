// Package roster contains the domain model for the class roster: students
// and their accumulated commendation counts. This is the core of the
// business logic - there are no external dependencies here.
package roster

import (
	"fmt"
	"strings"
	"time"
)

// ══════════════════════════════════════════════════════════════════════════════
// VALUE OBJECTS
// ══════════════════════════════════════════════════════════════════════════════

// Count represents a student's commendation balance.
type Count int

// IsValid checks that the count is non-negative.
func (c Count) IsValid() bool {
	return c >= 0
}

// Int returns the underlying int value.
func (c Count) Int() int {
	return int(c)
}

// Add applies a signed delta and returns the result, floored at zero.
// The floor is intentional: a debit larger than the balance clamps rather
// than failing, matching the eligibility protocol's debit semantics.
func (c Count) Add(delta int) Count {
	result := Count(int(c) + delta)
	if result < 0 {
		return 0
	}
	return result
}

// ══════════════════════════════════════════════════════════════════════════════
// MAIN ENTITY: STUDENT
// ══════════════════════════════════════════════════════════════════════════════

// Student is a member of the roster. Identity is the opaque ID; the name is
// display data and may change without affecting already-issued vouchers.
type Student struct {
	// ID is the opaque unique identifier.
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// Commendations is the current merit balance, never negative.
	Commendations Count `json:"commendations"`

	// UpdatedAt is the time of the last mutation.
	UpdatedAt time.Time `json:"updated_at"`
}

// NewStudent creates a student with validation.
func NewStudent(id, name string, commendations int) (*Student, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidStudentID
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidStudentName
	}
	if commendations < 0 {
		return nil, ErrInvalidCount
	}
	return &Student{
		ID:            id,
		Name:          name,
		Commendations: Count(commendations),
		UpdatedAt:     time.Now().UTC(),
	}, nil
}

// Adjust applies a signed commendation delta, floored at zero.
func (s *Student) Adjust(delta int) {
	s.Commendations = s.Commendations.Add(delta)
	s.UpdatedAt = time.Now().UTC()
}

// Rename updates the display name. Issued vouchers keep their frozen
// name snapshot; this only affects future issuances.
func (s *Student) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidStudentName
	}
	s.Name = name
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// String returns a representation for logging.
func (s *Student) String() string {
	return fmt.Sprintf("Student{ID: %s, Name: %s, Commendations: %d}", s.ID, s.Name, s.Commendations)
}

// Clone creates a copy of the student.
func (s *Student) Clone() *Student {
	if s == nil {
		return nil
	}
	clone := *s
	return &clone
}
