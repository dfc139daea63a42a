package models_test

import (
	"testing"

	"fourkara/backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestUserDisplayName(t *testing.T) {
	tests := []struct {
		name string
		user models.User
		want string
	}{
		{
			name: "full name",
			user: models.User{Username: "cdavis", FirstName: "Carol", LastName: "Davis"},
			want: "Carol Davis",
		},
		{
			name: "first name only",
			user: models.User{Username: "cdavis", FirstName: "Carol"},
			want: "Carol",
		},
		{
			name: "last name only",
			user: models.User{Username: "cdavis", LastName: "Davis"},
			want: "Davis",
		},
		{
			name: "falls back to username",
			user: models.User{Username: "cdavis"},
			want: "cdavis",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.user.DisplayName())
		})
	}
}
