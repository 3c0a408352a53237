package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/edwin-niwaha/pure-shopper/internal/catalog"
	"github.com/edwin-niwaha/pure-shopper/internal/draft"
)

// InitRoutes registers all catalog and draft-editor endpoints on the given
// Gin engine. It initializes the storage, services, and handlers, then binds
// each HTTP method and path to the appropriate handler function. The catalog
// is seeded with the product set the page supplies; finished transactions are
// forwarded to salesURL.
func InitRoutes(e *gin.Engine, salesURL string, products []catalog.Product) error {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	return InitRoutesWithSubmitter(e, draft.NewRestySubmitter(salesURL), products, logger)
}

// InitRoutesWithSubmitter is InitRoutes with an injectable submitter and
// logger, used by the integration tests.
func InitRoutesWithSubmitter(e *gin.Engine, submitter draft.Submitter, products []catalog.Product, logger *zap.Logger) error {
	catalogStorage := catalog.NewLocalStorage()
	catalogService := catalog.NewService(catalogStorage, logger)
	if err := catalogService.Seed(products); err != nil {
		return err
	}

	draftStorage := draft.NewLocalStorage()
	draftService := draft.NewService(draftStorage, catalogService, submitter, logger)

	catalogHandler := NewCatalogHandler(catalogService, logger)
	draftHandler := NewDraftHandler(draftService, logger)

	e.GET("/products", catalogHandler.handleSearchProducts)
	e.GET("/products/:id", catalogHandler.handleGetProduct)

	e.POST("/drafts", draftHandler.handleCreateDraft)
	e.GET("/drafts/:id", draftHandler.handleGetDraft)
	e.PATCH("/drafts/:id", draftHandler.handleUpdateCharges)
	e.POST("/drafts/:id/items", draftHandler.handleAddItem)
	e.PUT("/drafts/:id/items/:productId", draftHandler.handleSetQuantity)
	e.DELETE("/drafts/:id/items/:productId", draftHandler.handleRemoveItem)
	e.POST("/drafts/:id/submit", draftHandler.handleSubmitDraft)

	e.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	return nil
}
