package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"product-catalog/internal/domain"
)

// ProductService is what the handlers need from the service layer.
type ProductService interface {
	Create(ctx context.Context, record map[string]any) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	MassDelete(ctx context.Context, ids []int64) (int64, error)
}

// Deps groups the injected collaborators for route building.
type Deps struct {
	ProductSvc ProductService
}

// productResponse is the sparse row projection: specific columns that
// are NULL for the row's type are omitted, not emitted as null, so each
// payload stays variant-shaped.
type productResponse struct {
	ID     int64    `json:"id"`
	SKU    string   `json:"sku"`
	Name   string   `json:"name"`
	Price  float64  `json:"price"`
	Type   string   `json:"type"`
	Size   *float64 `json:"size,omitempty"`
	Weight *float64 `json:"weight,omitempty"`
	Height *float64 `json:"height,omitempty"`
	Width  *float64 `json:"width,omitempty"`
	Length *float64 `json:"length,omitempty"`
}

func toProductResponse(p domain.Product) productResponse {
	resp := productResponse{
		ID:     p.ID,
		SKU:    p.SKU,
		Name:   p.Name,
		Price:  p.Price,
		Type:   string(p.Type),
		Size:   p.Size,
		Weight: p.Weight,
	}
	if p.Dimensions != nil {
		resp.Height = &p.Dimensions.Height
		resp.Width = &p.Dimensions.Width
		resp.Length = &p.Dimensions.Length
	}
	return resp
}

func listProductsHandler(logger *log.Logger, svc ProductService, opts Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := svc.List(c.Request.Context())
		if err != nil {
			respondError(c, logger, opts, err)
			return
		}
		data := make([]productResponse, 0, len(products))
		for _, p := range products {
			data = append(data, toProductResponse(p))
		}
		c.JSON(http.StatusOK, gin.H{"status": "success", "data": data})
	}
}

func createProductHandler(logger *log.Logger, svc ProductService, opts Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		var record map[string]any
		if err := c.ShouldBindJSON(&record); err != nil || len(record) == 0 {
			respondError(c, logger, opts, domain.NewValidationError("Invalid input data"))
			return
		}

		p, err := svc.Create(c.Request.Context(), record)
		if err != nil {
			respondError(c, logger, opts, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success", "id": p.ID})
	}
}

type massDeleteRequest struct {
	IDs []int64 `json:"ids"`
}

func massDeleteHandler(logger *log.Logger, svc ProductService, opts Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req massDeleteRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.IDs == nil {
			respondError(c, logger, opts, domain.NewValidationError("Invalid input: ids array required"))
			return
		}

		count, err := svc.MassDelete(c.Request.Context(), req.IDs)
		if err != nil {
			respondError(c, logger, opts, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": fmt.Sprintf("%d products deleted successfully", count),
		})
	}
}

// respondError is the last line of defense: every failure leaves as a
// well-formed JSON envelope. Validation failures carry their message
// verbatim; everything else is logged in full and sanitized unless the
// process runs in development mode.
func respondError(c *gin.Context, logger *log.Logger, opts Options, err error) {
	switch {
	case domain.IsValidation(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "error", "message": err.Error()})
	case errors.Is(err, domain.ErrInvalidArgument):
		logger.Printf("http: invalid argument: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": clientMessage(opts, err, "Invalid request")})
	default:
		logger.Printf("http: internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": clientMessage(opts, err, "Database error occurred")})
	}
}

func clientMessage(opts Options, err error, generic string) string {
	if opts.Development {
		return err.Error()
	}
	return generic
}
