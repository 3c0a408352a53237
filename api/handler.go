package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/edwin-niwaha/pure-shopper/internal/catalog"
	"github.com/edwin-niwaha/pure-shopper/internal/draft"
)

// catalogHandler implements the read-only product endpoints.
type catalogHandler struct {
	catalogService *catalog.Service
	logger         *zap.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(catalogService *catalog.Service, logger *zap.Logger) *catalogHandler {
	return &catalogHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// handleSearchProducts handles the GET /products endpoint. The optional ?q=
// parameter filters by name as the user types.
func (h *catalogHandler) handleSearchProducts(ctx *gin.Context) {
	query := ctx.Query("q")

	products, err := h.catalogService.Search(query)
	if err != nil {
		h.logger.Error("failed to search products", zap.String("query", query), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search products"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"results": products, "quantity": len(products)})
}

// handleGetProduct handles the GET /products/:id endpoint.
func (h *catalogHandler) handleGetProduct(ctx *gin.Context) {
	p, err := h.catalogService.Lookup(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	ctx.JSON(http.StatusOK, p)
}

// draftHandler holds the draft service and implements HTTP handlers for the
// transaction draft editor. Every UI event on the sale form maps to one
// endpoint, and every mutation answers with the freshly rendered draft so the
// client never has to derive totals itself.
type draftHandler struct {
	draftService *draft.Service
	logger       *zap.Logger
}

// NewDraftHandler creates a new draft handler.
func NewDraftHandler(draftService *draft.Service, logger *zap.Logger) *draftHandler {
	return &draftHandler{
		draftService: draftService,
		logger:       logger,
	}
}

// handleCreateDraft handles the POST /drafts endpoint.
func (h *draftHandler) handleCreateDraft(ctx *gin.Context) {
	d, err := h.draftService.CreateDraft()
	if err != nil {
		h.logger.Error("failed to create draft", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create draft"})
		return
	}
	ctx.JSON(http.StatusCreated, d.Render())
}

// handleGetDraft handles the GET /drafts/:id endpoint.
func (h *draftHandler) handleGetDraft(ctx *gin.Context) {
	d, err := h.draftService.GetDraft(ctx.Param("id"))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, d.Render())
}

// handleAddItem handles the POST /drafts/:id/items endpoint
// (the product-selected event).
func (h *draftHandler) handleAddItem(ctx *gin.Context) {
	var req struct {
		ProductID string `json:"product_id"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("failed to bind JSON request", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	d, err := h.draftService.AddItem(ctx.Param("id"), req.ProductID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, d.Render())
}

// handleSetQuantity handles the PUT /drafts/:id/items/:productId endpoint
// (the quantity-input event). The quantity arrives as the raw typed string;
// anything invalid clamps to 1 rather than erroring.
func (h *draftHandler) handleSetQuantity(ctx *gin.Context) {
	var req struct {
		Quantity string `json:"quantity"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("failed to bind JSON request", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	d, err := h.draftService.SetQuantity(ctx.Param("id"), ctx.Param("productId"), req.Quantity)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, d.Render())
}

// handleRemoveItem handles the DELETE /drafts/:id/items/:productId endpoint.
func (h *draftHandler) handleRemoveItem(ctx *gin.Context) {
	d, err := h.draftService.RemoveItem(ctx.Param("id"), ctx.Param("productId"))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, d.Render())
}

// handleUpdateCharges handles the PATCH /drafts/:id endpoint
// (tax-percentage and amount-payed input events).
func (h *draftHandler) handleUpdateCharges(ctx *gin.Context) {
	var req struct {
		TaxPercentage *string `json:"tax_percentage"`
		AmountPayed   *string `json:"amount_payed"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("failed to bind JSON request", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	d, err := h.draftService.UpdateCharges(ctx.Param("id"), req.TaxPercentage, req.AmountPayed)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, d.Render())
}

// handleSubmitDraft handles the POST /drafts/:id/submit endpoint.
func (h *draftHandler) handleSubmitDraft(ctx *gin.Context) {
	var req struct {
		PaymentMethod string `json:"payment_method"`
		CustomerID    string `json:"customer_id"`
		TransDate     string `json:"trans_date"`
	}

	// An empty body is a plain submit with defaults.
	if err := ctx.ShouldBindJSON(&req); err != nil && ctx.Request.ContentLength > 0 {
		h.logger.Warn("failed to bind JSON request", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	receipt, err := h.draftService.Submit(ctx.Request.Context(), ctx.Param("id"), draft.SubmitOptions{
		PaymentMethod: req.PaymentMethod,
		CustomerID:    req.CustomerID,
		TransDate:     req.TransDate,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, receipt)
}

// respondError maps service errors to HTTP statuses.
func (h *draftHandler) respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, draft.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "draft not found"})
	case errors.Is(err, draft.ErrInsufficientPayment):
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": draft.ErrInsufficientPayment.Error()})
	case errors.Is(err, draft.ErrInvalidPaymentMethod):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment method"})
	default:
		h.logger.Error("internal error", zap.Error(err))
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "failed to forward submission"})
	}
}
