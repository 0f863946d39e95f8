package controllers

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/aniruddhballal/VenPay-sub001/config"
	"github.com/aniruddhballal/VenPay-sub001/middleware"
	"github.com/aniruddhballal/VenPay-sub001/models"
	"github.com/aniruddhballal/VenPay-sub001/utils"
)

const maxLoginAttempts = 5

// AuthController contains authentication logic
type AuthController struct {
	DB            *mongo.Client
	logger        *log.Logger
	loginAttempts map[string]struct {
		count       int
		lastAttempt time.Time
	}
	loginAttemptsMu sync.RWMutex
}

// NewAuthController creates a new auth controller
func NewAuthController(db *mongo.Client) *AuthController {
	ac := &AuthController{
		DB:     db,
		logger: log.New(os.Stdout, "[AUTH] ", log.LstdFlags),
		loginAttempts: make(map[string]struct {
			count       int
			lastAttempt time.Time
		}),
	}

	go ac.startLoginAttemptCleanupRoutine()

	return ac
}

// startLoginAttemptCleanupRoutine periodically clears stale attempt counters
func (ac *AuthController) startLoginAttemptCleanupRoutine() {
	for {
		time.Sleep(15 * time.Minute)
		cutoff := time.Now().Add(-15 * time.Minute)

		ac.loginAttemptsMu.Lock()
		for identifier, attempts := range ac.loginAttempts {
			if attempts.lastAttempt.Before(cutoff) {
				delete(ac.loginAttempts, identifier)
			}
		}
		ac.loginAttemptsMu.Unlock()
	}
}

// Signup registers a new company or vendor account
func (ac *AuthController) Signup(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	var req models.SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Validation failed: " + err.Error(),
		})
	}

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid email format",
		})
	}

	collection := config.GetCollection(ac.DB, "users")

	// Check for existing account
	count, err := collection.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to check existing users",
		})
	}
	if count > 0 {
		return c.JSON(http.StatusConflict, models.Response{
			Status:  http.StatusConflict,
			Message: "Email is already registered",
		})
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to process password",
		})
	}

	now := time.Now()
	user := models.User{
		ID:        primitive.NewObjectID(),
		Email:     email,
		Password:  hashedPassword,
		FullName:  utils.SanitizeInput(req.FullName),
		UserType:  req.UserType,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err = collection.InsertOne(ctx, user)
	if err != nil {
		// A concurrent signup with the same email gets past the count check
		// and lands on the unique index instead
		if mongo.IsDuplicateKeyError(err) {
			return c.JSON(http.StatusConflict, models.Response{
				Status:  http.StatusConflict,
				Message: "Email is already registered",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create user",
		})
	}

	user.Password = ""
	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Account created successfully",
		Data:    user,
	})
}

// Login authenticates a user and issues JWT tokens
func (ac *AuthController) Login(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	var loginReq models.LoginRequest
	if err := c.Bind(&loginReq); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&loginReq); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Validation failed: " + err.Error(),
		})
	}

	identifier := strings.ToLower(strings.TrimSpace(loginReq.Email))

	// Check brute-force counter before touching the database
	ac.loginAttemptsMu.RLock()
	attempts, exists := ac.loginAttempts[identifier]
	ac.loginAttemptsMu.RUnlock()
	if exists && attempts.count >= maxLoginAttempts && time.Since(attempts.lastAttempt) < 15*time.Minute {
		return c.JSON(http.StatusTooManyRequests, models.Response{
			Status:  http.StatusTooManyRequests,
			Message: "Too many failed login attempts. Please try again later",
		})
	}

	collection := config.GetCollection(ac.DB, "users")

	var user models.User
	err := collection.FindOne(ctx, bson.M{"email": identifier}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusUnauthorized, models.Response{
				Status:  http.StatusUnauthorized,
				Message: "Invalid credentials",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to find user",
		})
	}

	err = utils.CheckPassword(loginReq.Password, user.Password)
	if err != nil {
		ac.loginAttemptsMu.Lock()
		ac.loginAttempts[identifier] = struct {
			count       int
			lastAttempt time.Time
		}{count: attempts.count + 1, lastAttempt: time.Now()}
		ac.loginAttemptsMu.Unlock()

		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid credentials",
		})
	}

	ac.loginAttemptsMu.Lock()
	delete(ac.loginAttempts, identifier)
	ac.loginAttemptsMu.Unlock()

	token, refreshToken, err := middleware.GenerateJWT(user.ID.Hex(), user.Email, user.UserType)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate token",
		})
	}

	// Update user's active status
	filter := bson.M{"_id": user.ID}
	update := bson.M{"$set": bson.M{"isActive": true, "updatedAt": time.Now()}}
	_, err = collection.UpdateOne(ctx, filter, update)
	if err != nil {
		// Log the error but don't fail the login
		ac.logger.Printf("Failed to update user active status: %v", err)
	}

	user.Password = ""

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Login successful",
		Data: models.LoginResponse{
			Token:        token,
			RefreshToken: refreshToken,
			User:         user,
		},
	})
}
