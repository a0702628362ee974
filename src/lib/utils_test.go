package lib

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGenerateAndVerifyJWT(t *testing.T) {
	Cfg = &Config{JWTSecret: "test-secret", JWTExpiry: time.Hour}

	userID := primitive.NewObjectID()

	token, err := GenerateJWT(userID)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := VerifyJWT(token)
	assert.NoError(t, err)
	assert.Equal(t, userID.Hex(), claims["userId"])
}

func TestVerifyJWTRejectsGarbage(t *testing.T) {
	Cfg = &Config{JWTSecret: "test-secret", JWTExpiry: time.Hour}

	_, err := VerifyJWT("not-a-token")
	assert.Error(t, err)
}

func TestVerifyJWTRejectsWrongSecret(t *testing.T) {
	Cfg = &Config{JWTSecret: "secret-one", JWTExpiry: time.Hour}
	token, err := GenerateJWT(primitive.NewObjectID())
	assert.NoError(t, err)

	Cfg = &Config{JWTSecret: "secret-two", JWTExpiry: time.Hour}
	_, err = VerifyJWT(token)
	assert.Error(t, err)
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_EXPIRY", "bogus")
	t.Setenv("ALLOW_REINVITE_AFTER_REJECT", "")

	cfg := LoadConfig()

	assert.Equal(t, "lms-buddy", cfg.MongoDatabase)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.False(t, cfg.AllowReinviteAfterReject)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigReinviteFlag(t *testing.T) {
	t.Setenv("ALLOW_REINVITE_AFTER_REJECT", "true")

	cfg := LoadConfig()
	assert.True(t, cfg.AllowReinviteAfterReject)
}
