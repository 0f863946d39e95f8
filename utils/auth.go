// utils/auth.go
package utils

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/aniruddhballal/VenPay-sub001/config"
	"github.com/aniruddhballal/VenPay-sub001/middleware"
	"github.com/aniruddhballal/VenPay-sub001/models"
)

// HashPassword hashes a plain-text password with bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword compares a plain-text password against a bcrypt hash
func CheckPassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// GetUserIDFromToken extracts the user ID from the JWT token as an ObjectID
func GetUserIDFromToken(c echo.Context) (primitive.ObjectID, error) {
	userToken := c.Get("user")
	if userToken == nil {
		return primitive.NilObjectID, errors.New("no token found")
	}

	token, ok := userToken.(*jwt.Token)
	if !ok {
		return primitive.NilObjectID, errors.New("invalid token type")
	}

	claims, ok := token.Claims.(*middleware.JwtCustomClaims)
	if !ok {
		return primitive.NilObjectID, errors.New("invalid claims type")
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return primitive.NilObjectID, errors.New("invalid user ID format")
	}

	return userID, nil
}

// GetUserFromToken extracts the user from the JWT token and retrieves the
// full user object from the database
func GetUserFromToken(c echo.Context, db *mongo.Client) (*models.User, error) {
	userID, err := GetUserIDFromToken(c)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	usersCollection := config.GetCollection(db, "users")
	var user models.User
	err = usersCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("user not found")
		}
		return nil, errors.New("error retrieving user")
	}

	user.Password = ""

	return &user, nil
}
