package controllers

import (
	"net/http/httptest"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/aniruddhballal/VenPay-sub001/middleware"
)

type testValidator struct {
	validate *validator.Validate
}

func (tv *testValidator) Validate(i interface{}) error {
	return tv.validate.Struct(i)
}

// newTestContext builds an echo context the way the JWT middleware leaves it
// after verifying a token for the given user. An empty userType leaves the
// context unauthenticated.
func newTestContext(method, target, body string, userID primitive.ObjectID, userType string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = &testValidator{validate: validator.New()}

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if userType != "" {
		claims := &middleware.JwtCustomClaims{
			UserID:   userID.Hex(),
			Email:    "user@example.com",
			UserType: userType,
		}
		c.Set("user", jwt.NewWithClaims(jwt.SigningMethodHS256, claims))
		c.Set("userId", claims.UserID)
		c.Set("userType", userType)
	}

	return c, rec
}
