package roster

import (
	"errors"
)

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN ERRORS
// ══════════════════════════════════════════════════════════════════════════════

var (
	// ErrInvalidStudentID - student id must be non-empty.
	ErrInvalidStudentID = errors.New("invalid student id: must be non-empty")

	// ErrInvalidStudentName - student name must be non-empty.
	ErrInvalidStudentName = errors.New("invalid student name: must be non-empty")

	// ErrInvalidCount - commendation count must be non-negative.
	ErrInvalidCount = errors.New("invalid commendation count: must be non-negative")
)

// ══════════════════════════════════════════════════════════════════════════════
// ROSTER STORE
// ══════════════════════════════════════════════════════════════════════════════

// Store holds the students of one class in a stable insertion order.
// All operations are pure in-memory transitions; persistence is composed
// around the store by the application layer.
type Store struct {
	students []*Student
	byID     map[string]*Student
}

// NewStore creates a roster from the given students. Order is preserved;
// duplicate ids keep the first occurrence.
func NewStore(students []*Student) *Store {
	s := &Store{
		students: make([]*Student, 0, len(students)),
		byID:     make(map[string]*Student, len(students)),
	}
	for _, st := range students {
		if st == nil || st.ID == "" {
			continue
		}
		if _, exists := s.byID[st.ID]; exists {
			continue
		}
		s.students = append(s.students, st)
		s.byID[st.ID] = st
	}
	return s
}

// AdjustCommendations sets commendations = max(0, commendations + delta)
// for the matching student. Unknown ids are silently ignored: the caller
// gets back false and no state changes. Never errors.
func (s *Store) AdjustCommendations(id string, delta int) bool {
	st, ok := s.byID[id]
	if !ok {
		return false
	}
	st.Adjust(delta)
	return true
}

// Find returns the student with the given id. An empty or unknown id falls
// back to the first student in roster order, so the caller always has a
// selection when the roster is non-empty. Returns nil only for an empty
// roster.
func (s *Store) Find(id string) *Student {
	if st, ok := s.byID[id]; ok {
		return st
	}
	if len(s.students) == 0 {
		return nil
	}
	return s.students[0]
}

// Get returns the exact student, or nil when absent. No fallback.
func (s *Store) Get(id string) *Student {
	return s.byID[id]
}

// Rename updates a student's display name. Unknown ids are ignored.
func (s *Store) Rename(id, name string) bool {
	st, ok := s.byID[id]
	if !ok {
		return false
	}
	return st.Rename(name) == nil
}

// Students returns the roster in insertion order. The slice is a copy but
// the students are shared; treat them as read-only outside the store.
func (s *Store) Students() []*Student {
	out := make([]*Student, len(s.students))
	copy(out, s.students)
	return out
}

// Len returns the number of students.
func (s *Store) Len() int {
	return len(s.students)
}
