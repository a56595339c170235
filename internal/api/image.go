package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nutriplan/nutriplan-backend/internal/middleware"
	"github.com/nutriplan/nutriplan-backend/internal/service"
)

const maxImageSize = 5 << 20 // 5 MB

type ImageHandler struct {
	imageService service.IImageService
	foodService  service.IFoodService
}

func NewImageHandler(imageService service.IImageService, foodService service.IFoodService) *ImageHandler {
	return &ImageHandler{
		imageService: imageService,
		foodService:  foodService,
	}
}

// RegisterRoutes wires the photo endpoints. Uploads are admin writes and
// honor writeGuard; the presigned read is open to any authenticated client.
func (h *ImageHandler) RegisterRoutes(router *gin.RouterGroup, writeGuard gin.HandlerFunc) {
	if writeGuard == nil {
		writeGuard = func(c *gin.Context) { c.Next() }
	}
	router.POST("/foods/:id/image", middleware.AdminOnly(), writeGuard, h.UploadFoodImage)
	router.GET("/foods/:id/image-url", h.GetFoodImageURL)
}

// UploadFoodImage accepts a multipart photo, stores it in S3 and records the
// URL on the food row.
func (h *ImageHandler) UploadFoodImage(c *gin.Context) {
	foodID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid food id"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	if fileHeader.Size > maxImageSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image exceeds 5MB limit"})
		return
	}

	// The food must exist before accepting its photo
	if _, err := h.foodService.GetFood(c.Request.Context(), foodID); err != nil {
		if errors.Is(err, service.ErrFoodNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "food not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch food"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read image"})
		return
	}
	defer file.Close()

	url, err := h.imageService.UploadFoodImage(c.Request.Context(), foodID,
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.foodService.SetImageURL(c.Request.Context(), foodID, url); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record image url"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"image_url": url})
}

// GetFoodImageURL hands out a short-lived signed URL for the food's photo,
// for deployments where the bucket is not public.
func (h *ImageHandler) GetFoodImageURL(c *gin.Context) {
	foodID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid food id"})
		return
	}

	food, err := h.foodService.GetFood(c.Request.Context(), foodID)
	if err != nil {
		if errors.Is(err, service.ErrFoodNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "food not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch food"})
		return
	}
	if food.ImageURL == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "food has no image"})
		return
	}

	key, ok := objectKeyFromURL(food.ImageURL)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stored image url is malformed"})
		return
	}

	url, err := h.imageService.PresignedImageURL(c.Request.Context(), key)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sign image url"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"image_url": url})
}

// objectKeyFromURL recovers the S3 object key from a stored public URL.
func objectKeyFromURL(url string) (string, bool) {
	_, key, found := strings.Cut(url, ".s3.amazonaws.com/")
	if !found || key == "" {
		return "", false
	}
	return key, true
}
