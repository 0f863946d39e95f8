package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aniruddhballal/VenPay-sub001/config"
	"github.com/aniruddhballal/VenPay-sub001/middleware"
	"github.com/aniruddhballal/VenPay-sub001/models"
	"github.com/aniruddhballal/VenPay-sub001/utils"
)

// ProductController handles vendor product listings
type ProductController struct {
	DB *mongo.Client
}

// NewProductController creates a new product controller
func NewProductController(db *mongo.Client) *ProductController {
	return &ProductController{DB: db}
}

// CreateProduct creates a new product for the authenticated vendor
func (pc *ProductController) CreateProduct(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	if middleware.ExtractUserType(c) != "vendor" {
		return c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: "Only vendors can create products",
		})
	}

	vendorID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid token",
		})
	}

	var req models.CreateProductRequest
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

	now := time.Now()
	product := models.Product{
		ID:          primitive.NewObjectID(),
		VendorID:    vendorID,
		Name:        utils.SanitizeInput(req.Name),
		Description: utils.SanitizeInput(req.Description),
		Price:       req.Price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	collection := config.GetCollection(pc.DB, "products")
	_, err = collection.InsertOne(ctx, product)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create product",
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Product created successfully",
		Data:    product,
	})
}

// GetProducts lists all products for company browsing
func (pc *ProductController) GetProducts(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	collection := config.GetCollection(pc.DB, "products")
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve products",
		})
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err = cursor.All(ctx, &products); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode products",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Products retrieved successfully",
		Data:    products,
	})
}

// GetVendorProducts lists the authenticated vendor's own products
func (pc *ProductController) GetVendorProducts(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	vendorID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid token",
		})
	}

	collection := config.GetCollection(pc.DB, "products")
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := collection.Find(ctx, bson.M{"vendorId": vendorID}, findOptions)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve products",
		})
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err = cursor.All(ctx, &products); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode products",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Products retrieved successfully",
		Data:    products,
	})
}
