package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanSubmitFor(t *testing.T) {
	tests := []struct {
		name          string
		actingUID     string
		targetUID     string
		actingIsAdmin bool
		want          bool
	}{
		{"student for self", "u1", "u1", false, true},
		{"student for another student", "u1", "u2", false, false},
		{"admin for self", "admin", "admin", true, true},
		{"admin for any student", "admin", "u2", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, canSubmitFor(tt.actingUID, tt.targetUID, tt.actingIsAdmin))
		})
	}
}
