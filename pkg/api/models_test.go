package api

import "testing"

func TestUser_CanModerate(t *testing.T) {
	tests := []struct {
		name     string
		user     User
		authorID int
		want     bool
	}{
		{"author edits own comment", User{ID: 3, Role: RoleUser}, 3, true},
		{"writer edits own comment", User{ID: 5, Role: RoleWriter}, 5, true},
		{"admin moderates anyone", User{ID: 1, Role: RoleAdmin}, 9, true},
		{"reader cannot touch another's comment", User{ID: 3, Role: RoleUser}, 4, false},
		{"writer cannot touch another's comment", User{ID: 5, Role: RoleWriter}, 3, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.CanModerate(tt.authorID); got != tt.want {
				t.Errorf("CanModerate(%d) = %v, want %v", tt.authorID, got, tt.want)
			}
		})
	}
}
