package broker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubjectForTaskEvents(t *testing.T) {
	for _, event := range []EventType{TaskCreated, TaskUpdated, TaskDeleted, TaskToggled} {
		assert.Equal(t, TaskSubject, SubjectFor(event))
	}
}

func TestSubjectForUserEvents(t *testing.T) {
	assert.Equal(t, UserSubject, SubjectFor(UserRegistered))
	assert.Equal(t, UserSubject, SubjectFor(UserUpdated))
}
