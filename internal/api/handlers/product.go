package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yunwei-labs/mechsite/internal/api/middleware"
	"github.com/yunwei-labs/mechsite/internal/config"
	"github.com/yunwei-labs/mechsite/internal/domain"
	"github.com/yunwei-labs/mechsite/internal/service"
	"github.com/yunwei-labs/mechsite/pkg/logger"
	"github.com/yunwei-labs/mechsite/pkg/response"
)

// ProductHandler handles product-related requests
type ProductHandler struct {
	productService *service.ProductService
	content        config.ContentConfig
	logger         *logger.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService, content config.ContentConfig, log *logger.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		content:        content,
		logger:         log.WithComponent("product-handler"),
	}
}

// Create handles product creation
func (h *ProductHandler) Create(c *gin.Context) {
	var req domain.ProductCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	product, err := h.productService.Create(c.Request.Context(), &req, middleware.GetActor(c))
	if err != nil {
		writeError(c, err, "Failed to create product")
		return
	}

	response.Created(c, product)
}

// Get retrieves a product by ID or slug
func (h *ProductHandler) Get(c *gin.Context) {
	idOrSlug := c.Param("id")
	actor := middleware.GetActor(c)

	var (
		product *domain.Product
		err     error
	)
	if c.Query("render") == "html" {
		product, err = h.productService.GetRendered(c.Request.Context(), idOrSlug, actor)
	} else {
		product, err = h.productService.Get(c.Request.Context(), idOrSlug, actor)
	}
	if err != nil {
		writeError(c, err, "Failed to retrieve product")
		return
	}

	response.OK(c, product)
}

// List retrieves products with pagination and filtering
func (h *ProductHandler) List(c *gin.Context) {
	parser := NewQueryParamParser(c)

	pagination := parser.Pagination(h.content.ProductPageSize, h.content.MaxPageSize)
	filter := &domain.ProductListFilter{
		Search:       parser.String("search", ""),
		CategorySlug: parser.String("category", ""),
		Status:       domain.ProductStatus(parser.String("status", "")),
		Page:         pagination.Page,
		Limit:        pagination.Limit,
	}

	products, total, err := h.productService.List(c.Request.Context(), filter, middleware.GetActor(c))
	if err != nil {
		writeError(c, err, "Failed to list products")
		return
	}

	response.Paginated(c, products, filter.Page, filter.Limit, total)
}

// Update handles product updates
func (h *ProductHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var req domain.ProductUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	product, err := h.productService.Update(c.Request.Context(), id, &req, middleware.GetActor(c))
	if err != nil {
		writeError(c, err, "Failed to update product")
		return
	}

	response.OK(c, product)
}

// Delete handles product deletion
func (h *ProductHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.productService.Delete(c.Request.Context(), id, middleware.GetActor(c)); err != nil {
		writeError(c, err, "Failed to delete product")
		return
	}

	response.Message(c, "Product deleted")
}
