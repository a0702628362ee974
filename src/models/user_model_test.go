package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateCompleteness(t *testing.T) {
	empty := User{}
	assert.Equal(t, 0, empty.CalculateCompleteness())

	named := User{Name: "Alice"}
	assert.Equal(t, 10, named.CalculateCompleteness())

	// Generated placeholder avatars do not count as a filled avatar
	placeholder := User{Name: "Alice", Avatar: "https://api.dicebear.com/7.x/avataaars/svg?seed=alice"}
	assert.Equal(t, 10, placeholder.CalculateCompleteness())

	withAvatar := User{Name: "Alice", Avatar: "data:image/png;base64,abc"}
	assert.Equal(t, 30, withAvatar.CalculateCompleteness())

	// Bio only counts past 20 characters
	shortBio := User{Name: "Alice", Bio: "hi"}
	assert.Equal(t, 10, shortBio.CalculateCompleteness())

	full := User{
		Name:          "Alice",
		Avatar:        "data:image/png;base64,abc",
		Bio:           "I study physics and enjoy group problem solving.",
		Skills:        []string{"calculus"},
		Subjects:      []SubjectRating{{Name: "Physics", Strength: SubjectStrengthStrong}},
		EmailVerified: true,
	}
	assert.Equal(t, 100, full.CalculateCompleteness())
}
