package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rejsermedboern/feedsync/app/catalog"
	"github.com/rejsermedboern/feedsync/app/database"
	"github.com/rejsermedboern/feedsync/app/feed"
	"github.com/rejsermedboern/feedsync/app/tasks"
)

const defaultFeaturedLimit = 6

type Handler struct {
	store       *catalog.Store
	configCache *feed.ConfigCache
	runRepo     *database.RunRepository
	scheduler   tasks.TaskSchedulerInterface
}

func NewHandler(store *catalog.Store, configCache *feed.ConfigCache,
	runRepo *database.RunRepository, scheduler tasks.TaskSchedulerInterface) *Handler {
	return &Handler{
		store:       store,
		configCache: configCache,
		runRepo:     runRepo,
		scheduler:   scheduler,
	}
}

func (h *Handler) ListProducts(c *gin.Context) {
	products := h.store.GetAll()
	c.JSON(http.StatusOK, gin.H{
		"products":     products,
		"total":        len(products),
		"last_updated": h.store.LastUpdated(),
	})
}

func (h *Handler) GetFeatured(c *gin.Context) {
	limit := defaultFeaturedLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
			return
		}
		limit = parsed
	}

	products := h.store.GetFeatured(limit)
	c.JSON(http.StatusOK, gin.H{"products": products, "total": len(products)})
}

func (h *Handler) SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing query parameter 'q'"})
		return
	}

	products := h.store.Search(query)
	c.JSON(http.StatusOK, gin.H{"products": products, "total": len(products), "query": query})
}

func (h *Handler) GetProductBySlug(c *gin.Context) {
	slug := c.Param("slug")

	product := h.store.GetBySlug(slug)
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *Handler) ListCategories(c *gin.Context) {
	categories := make([]gin.H, 0, len(catalog.Categories))
	for _, info := range catalog.Categories {
		categories = append(categories, gin.H{
			"slug":        info.Slug,
			"name":        info.Name,
			"description": info.Description,
			"keywords":    info.Keywords,
			"products":    len(h.store.GetByCategory(info.Slug)),
		})
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (h *Handler) GetCategoryProducts(c *gin.Context) {
	category := catalog.Category(c.Param("slug"))
	if !category.Valid() {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown category"})
		return
	}

	var products []catalog.Product
	if subCategory := c.Query("subcategory"); subCategory != "" {
		products = h.store.GetBySubCategory(category, subCategory)
	} else {
		products = h.store.GetByCategory(category)
	}

	c.JSON(http.StatusOK, gin.H{
		"category": category,
		"products": products,
		"total":    len(products),
	})
}

func (h *Handler) GetSubCategories(c *gin.Context) {
	category := catalog.Category(c.Param("slug"))
	if !category.Valid() {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown category"})
		return
	}

	subCategories := h.store.GetSubCategories(category)
	c.JSON(http.StatusOK, gin.H{
		"category":      category,
		"subcategories": subCategories,
		"total":         len(subCategories),
	})
}

func (h *Handler) HealthCheck(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp":    time.Now().In(time.Local).Format(time.RFC3339),
		"products":     h.store.Count(),
		"last_updated": h.store.LastUpdated(),
		"loaded_feeds": h.configCache.GetConfigCount(),
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats := gin.H{
		"products":     h.store.Count(),
		"last_updated": h.store.LastUpdated(),
	}

	byCategory := make(map[string]int)
	for _, info := range catalog.Categories {
		byCategory[string(info.Slug)] = len(h.store.GetByCategory(info.Slug))
	}
	stats["by_category"] = byCategory

	if h.runRepo != nil {
		if runs, err := h.runRepo.GetRecentRuns(10); err == nil {
			stats["recent_runs"] = runs
		} else {
			slog.Error("Failed to load run history", "error", err)
		}
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) TriggerSync(c *gin.Context) {
	if err := h.scheduler.EnqueueSync(); err != nil {
		slog.Error("Failed to enqueue sync", "error", err)
		c.JSON(http.StatusConflict, gin.H{"error": "Sync already pending", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "sync enqueued"})
}

func (h *Handler) ReloadCatalog(c *gin.Context) {
	if err := h.store.Reload(); err != nil {
		slog.Error("Catalog reload failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Reload failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       "reloaded",
		"products":     h.store.Count(),
		"last_updated": h.store.LastUpdated(),
	})
}
