package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	Id              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name            string             `json:"name" bson:"name"`
	Email           string             `json:"email" bson:"email"`
	EmailVerified   bool               `json:"emailVerified" bson:"emailVerified"`
	Password        string             `json:"password,omitempty" bson:"password"`
	Role            UserRole           `json:"role" bson:"role"`
	Avatar          string             `json:"avatar" bson:"avatar"`
	GradeOrClass    string             `json:"gradeOrClass" bson:"gradeOrClass"`
	Department      string             `json:"department" bson:"department"`
	EnrolledCourses []string           `json:"enrolledCourses" bson:"enrolledCourses"`
	Subjects        []SubjectRating    `json:"subjects" bson:"subjects"`
	Skills          []string           `json:"skills" bson:"skills"`
	Interests       []string           `json:"interests" bson:"interests"`
	Bio             string             `json:"bio" bson:"bio"`
	Availability    Availability       `json:"availability" bson:"availability"`
	Completeness    int                `json:"completeness" bson:"completeness"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
}

// UserDto is the reduced profile snapshot embedded in populated responses
type UserDto struct {
	ID     primitive.ObjectID `bson:"_id" json:"id"`
	Name   string             `bson:"name" json:"name"`
	Avatar string             `bson:"avatar" json:"avatar"`
}

type SubjectRating struct {
	Name     string          `json:"name" bson:"name"`
	Strength SubjectStrength `json:"strength" bson:"strength"`
}

type UserRole string

const (
	UserRoleStudent UserRole = "student"
	UserRoleFaculty UserRole = "faculty"
	UserRoleAdmin   UserRole = "admin"
)

type SubjectStrength string

const (
	SubjectStrengthWeak     SubjectStrength = "weak"
	SubjectStrengthModerate SubjectStrength = "moderate"
	SubjectStrengthStrong   SubjectStrength = "strong"
)

type Availability string

const (
	AvailabilityOnline  Availability = "online"
	AvailabilityAway    Availability = "away"
	AvailabilityOffline Availability = "offline"
)

// CalculateCompleteness scores how much of the optional profile the user has
// filled in. Recomputed on every profile save.
func (u *User) CalculateCompleteness() int {
	score := 0
	if u.Name != "" {
		score += 10
	}
	if u.Avatar != "" && !strings.Contains(u.Avatar, "dicebear") {
		score += 20
	}
	if len(u.Bio) > 20 {
		score += 20
	}
	if len(u.Skills) > 0 {
		score += 15
	}
	if len(u.Subjects) > 0 {
		score += 15
	}
	if u.EmailVerified {
		score += 20
	}
	if score > 100 {
		score = 100
	}
	return score
}
