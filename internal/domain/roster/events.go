package roster

import (
	"github.com/merit-hub/merit-cafe-hub/internal/domain/shared"
)

// CommendationsAdjustedEvent is emitted after a commendation balance changes.
type CommendationsAdjustedEvent struct {
	shared.BaseEvent
	StudentName string `json:"student_name"`
	Delta       int    `json:"delta"`
	Balance     int    `json:"balance"`
}

// NewCommendationsAdjustedEvent creates the adjustment event.
func NewCommendationsAdjustedEvent(st *Student, delta int) CommendationsAdjustedEvent {
	return CommendationsAdjustedEvent{
		BaseEvent:   shared.NewBaseEvent(shared.EventCommendationsAdjusted, st.ID),
		StudentName: st.Name,
		Delta:       delta,
		Balance:     st.Commendations.Int(),
	}
}

// StudentRenamedEvent is emitted after a student's display name changes.
type StudentRenamedEvent struct {
	shared.BaseEvent
	Name string `json:"name"`
}

// NewStudentRenamedEvent creates the rename event.
func NewStudentRenamedEvent(st *Student) StudentRenamedEvent {
	return StudentRenamedEvent{
		BaseEvent: shared.NewBaseEvent(shared.EventStudentRenamed, st.ID),
		Name:      st.Name,
	}
}
