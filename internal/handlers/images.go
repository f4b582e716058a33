package handlers

import (
	"net/http"
	"net/url"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	log "github.com/sirupsen/logrus"

	"tienda_back_end/internal/models"
	"tienda_back_end/internal/store"
)

const signedURLExpiry = 24 * time.Hour

// Images stores product images in MinIO and hands out presigned GET
// URLs. When MinIO is not configured both endpoints answer 503.
type Images struct {
	products store.ProductStore
	minio    *minio.Client
	bucket   string
}

func NewImages(products store.ProductStore, minioClient *minio.Client, bucket string) *Images {
	return &Images{products: products, minio: minioClient, bucket: bucket}
}

// Upload handles POST /api/products/:id/image (multipart field "image").
// The object key is stored on the product as its image reference.
func (h *Images) Upload(c *gin.Context) {
	if h.minio == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image storage not configured"})
		return
	}

	ctx := c.Request.Context()
	id := c.Param("id")

	product, err := h.products.GetByID(ctx, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing 'image' file field"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer src.Close()

	key := "products/" + uuid.New().String() + filepath.Ext(file.Filename)
	_, err = h.minio.PutObject(ctx, h.bucket, key, src, file.Size, minio.PutObjectOptions{
		ContentType: file.Header.Get("Content-Type"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed: " + err.Error()})
		return
	}

	updated, err := h.products.Update(ctx, id, models.ProductInput{ImageURL: &key})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	log.WithFields(log.Fields{"productId": id, "object": key}).Info("product image uploaded")
	c.JSON(http.StatusOK, updated)
}

// SignedURL handles GET /api/products/:id/image-url.
func (h *Images) SignedURL(c *gin.Context) {
	if h.minio == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image storage not configured"})
		return
	}

	ctx := c.Request.Context()

	product, err := h.products.GetByID(ctx, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if product == nil || product.ImageURL == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "product has no image"})
		return
	}

	signed, err := h.minio.PresignedGetObject(ctx, h.bucket, product.ImageURL, signedURLExpiry, url.Values{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "presign failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": signed.String()})
}
