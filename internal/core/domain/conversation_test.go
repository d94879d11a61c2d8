package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_IsValid(t *testing.T) {
	assert.True(t, RoleUser.IsValid())
	assert.True(t, RoleAssistant.IsValid())
	assert.False(t, Role("system").IsValid())
	assert.False(t, Role("").IsValid())
}

func TestQuestion_Validate(t *testing.T) {
	tests := []struct {
		name    string
		q       Question
		wantErr bool
	}{
		{"valid", Question{Text: "What reduces fever?"}, false},
		{"valid with history", Question{Text: "And dosage?", History: []ConversationTurn{
			{Role: RoleUser, Text: "What reduces fever?"},
			{Role: RoleAssistant, Text: "Aspirin."},
		}}, false},
		{"empty question", Question{}, true},
		{"bad role", Question{Text: "q", History: []ConversationTurn{{Role: "system", Text: "x"}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.q.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
