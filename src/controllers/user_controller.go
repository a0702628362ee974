package controllers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/lmsbuddy/backend/src/lib"
	"github.com/lmsbuddy/backend/src/models"
)

// SearchUsers searches the user directory by name (case-insensitive) and
// optionally filters by a rated subject
func SearchUsers(c *fiber.Ctx) error {
	query := c.Query("query")
	subject := c.Query("subject")

	filter := bson.M{}
	if query != "" {
		filter["name"] = bson.M{"$regex": query, "$options": "i"}
	}
	if subject != "" && subject != "All Subjects" {
		filter["subjects.name"] = subject
	}

	opts := options.Find().SetProjection(bson.M{"password": 0})

	cursor, err := lib.DB.Collection("users").Find(c.Context(), filter, opts)
	if err != nil {
		lib.Logger.Error("Error searching users", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Search failed",
		})
	}
	defer cursor.Close(c.Context())

	users := make([]models.User, 0)
	if err := cursor.All(c.Context(), &users); err != nil {
		lib.Logger.Error("Error decoding users", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Search failed",
		})
	}

	return c.Status(fiber.StatusOK).JSON(users)
}

// GetUserByID returns a single public profile
func GetUserByID(c *fiber.Ctx) error {
	userID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid user ID format",
		})
	}

	user, err := lib.FindUserByID(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "User not found",
		})
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

// UpdateProfile updates the authenticated user's own profile fields and
// recomputes completeness. Identity fields (email, role) are not editable here.
func UpdateProfile(c *fiber.Ctx) error {
	var body struct {
		Name            *string                `json:"name"`
		Avatar          *string                `json:"avatar"`
		GradeOrClass    *string                `json:"gradeOrClass"`
		Department      *string                `json:"department"`
		EnrolledCourses []string               `json:"enrolledCourses"`
		Subjects        []models.SubjectRating `json:"subjects"`
		Skills          []string               `json:"skills"`
		Interests       []string               `json:"interests"`
		Bio             *string                `json:"bio"`
		Availability    *models.Availability   `json:"availability"`
	}

	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid data",
		})
	}

	user := c.Locals("user").(models.User)

	if body.Name != nil {
		user.Name = *body.Name
	}
	if body.Avatar != nil {
		user.Avatar = *body.Avatar
	}
	if body.GradeOrClass != nil {
		user.GradeOrClass = *body.GradeOrClass
	}
	if body.Department != nil {
		user.Department = *body.Department
	}
	if body.EnrolledCourses != nil {
		user.EnrolledCourses = body.EnrolledCourses
	}
	if body.Subjects != nil {
		user.Subjects = body.Subjects
	}
	if body.Skills != nil {
		user.Skills = body.Skills
	}
	if body.Interests != nil {
		user.Interests = body.Interests
	}
	if body.Bio != nil {
		user.Bio = *body.Bio
	}
	if body.Availability != nil {
		user.Availability = *body.Availability
	}

	user.Completeness = user.CalculateCompleteness()

	update := bson.M{
		"$set": bson.M{
			"name":            user.Name,
			"avatar":          user.Avatar,
			"gradeOrClass":    user.GradeOrClass,
			"department":      user.Department,
			"enrolledCourses": user.EnrolledCourses,
			"subjects":        user.Subjects,
			"skills":          user.Skills,
			"interests":       user.Interests,
			"bio":             user.Bio,
			"availability":    user.Availability,
			"completeness":    user.Completeness,
		},
	}

	if _, err := lib.DB.Collection("users").UpdateOne(c.Context(), bson.M{"_id": user.Id}, update); err != nil {
		lib.Logger.Error("Error updating profile", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to update profile",
		})
	}

	return c.Status(fiber.StatusOK).JSON(user)
}
