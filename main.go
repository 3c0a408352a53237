package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/edwin-niwaha/pure-shopper/api"
	"github.com/edwin-niwaha/pure-shopper/internal/catalog"
)

// seedCatalog is the stand-in product set used when the service runs on its
// own. In production the embedding page supplies the active catalog.
func seedCatalog() []catalog.Product {
	return []catalog.Product{
		{ID: "1", Name: "Lavender Mist", Volume: "50 ml", UnitPrice: decimal.RequireFromString("12.50")},
		{ID: "2", Name: "Citrus Bloom", Volume: "100 ml", UnitPrice: decimal.RequireFromString("18.00")},
		{ID: "3", Name: "Ocean Breeze", Volume: "30 ml", UnitPrice: decimal.RequireFromString("9.75")},
		{ID: "4", Name: "Vanilla Noir", Volume: "75 ml", UnitPrice: decimal.RequireFromString("21.30")},
	}
}

func main() {
	salesURL := os.Getenv("SALES_API_URL")
	if salesURL == "" {
		salesURL = "http://localhost:8080/sales"
	}

	r := gin.Default()
	if err := api.InitRoutes(r, salesURL, seedCatalog()); err != nil {
		panic(fmt.Errorf("error initializing routes: %v", err))
	}

	if err := r.Run(":8081"); err != nil {
		panic(fmt.Errorf("error trying to start server: %v", err))
	}
}
