package handler

import (
	inventoryapp "github.com/ecoharvest/backend/internal/application/inventory"
	"github.com/ecoharvest/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AdjustBatchRequest is the body for a manual batch quantity correction.
// Delta is signed; the remaining quantity never drops below zero.
type AdjustBatchRequest struct {
	Delta decimal.Decimal `json:"delta" binding:"required"`
}

// InventoryHandler handles admin inventory endpoints: import receipts,
// batch listings and manual stock corrections.
type InventoryHandler struct {
	BaseHandler
	receipts *inventoryapp.ReceiptService
	stock    *inventoryapp.StockService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(receipts *inventoryapp.ReceiptService, stock *inventoryapp.StockService) *InventoryHandler {
	return &InventoryHandler{receipts: receipts, stock: stock}
}

// PostReceipt records an import receipt and materializes one stock batch
// per line, all within a single transaction.
func (h *InventoryHandler) PostReceipt(c *gin.Context) {
	var req inventoryapp.CreateImportReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	receipt, err := h.receipts.PostReceipt(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, receipt)
}

// GetReceipt returns one import receipt with its lines
func (h *InventoryHandler) GetReceipt(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid receipt ID format")
		return
	}

	receipt, err := h.receipts.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, receipt)
}

// ListReceipts returns a page of import receipts, newest first
func (h *InventoryHandler) ListReceipts(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	filter := buildFilter(req)
	receipts, total, err := h.receipts.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, receipts, total, filter.Page, filter.PageSize)
}

// ListBatches returns a product's batches in consumption order
func (h *InventoryHandler) ListBatches(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	batches, err := h.stock.ListBatches(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]inventoryapp.BatchResponse, len(batches))
	for i := range batches {
		responses[i] = inventoryapp.ToBatchResponse(&batches[i])
	}

	h.Success(c, responses)
}

// GetStock returns the live batch-sum stock for a product
func (h *InventoryHandler) GetStock(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	total, err := h.stock.TotalStock(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"product_id": productID, "quantity": total})
}

// AdjustBatch applies a signed correction to one batch and resyncs the
// product's denormalized quantity.
func (h *InventoryHandler) AdjustBatch(c *gin.Context) {
	batchID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid batch ID format")
		return
	}

	var req AdjustBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	batch, err := h.stock.AdjustBatchQuantity(c.Request.Context(), batchID, req.Delta)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, inventoryapp.ToBatchResponse(batch))
}

// SyncProduct recomputes a product's denormalized quantity from its
// batches. Recovery endpoint for drift, normally a no-op.
func (h *InventoryHandler) SyncProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	if err := h.stock.SyncProductQuantity(c.Request.Context(), productID); err != nil {
		h.HandleError(c, err)
		return
	}

	total, err := h.stock.TotalStock(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"product_id": productID, "quantity": total})
}
