package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bigdecks/catalog/internal/cards"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var errMissingCardService = errors.New("card service dependency required")

// Dependencies carries the collaborators the HTTP surface needs.
type Dependencies struct {
	CardService *cards.Service
	Logger      *zap.Logger
}

// NewHTTPHandler builds the read-side JSON API over the committed catalog.
func NewHTTPHandler(deps Dependencies) (http.Handler, error) {
	if deps.CardService == nil {
		return nil, errMissingCardService
	}

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodOptions},
		AllowHeaders: []string{"Content-Type"},
		MaxAge:       12 * time.Hour,
	}))

	handler := &httpHandler{
		cardService: deps.CardService,
		logger:      logger,
	}

	router.GET("/healthz", handler.handleHealth)
	router.GET("/cards", handler.handleSearch)
	router.GET("/cards/random", handler.handleRandomCard)
	router.GET("/cards/:id", handler.handleCardByID)
	router.GET("/cards/:id/arena", handler.handleArenaID)
	router.GET("/printings", handler.handlePrintings)
	router.GET("/sets/:code/:number", handler.handleCardBySetAndNumber)

	return router, nil
}

type httpHandler struct {
	cardService *cards.Service
	logger      *zap.Logger
}

func (h *httpHandler) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *httpHandler) handleCardByID(c *gin.Context) {
	detail, err := h.cardService.CardByScryfallID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondCardError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *httpHandler) handleRandomCard(c *gin.Context) {
	detail, err := h.cardService.RandomCard(c.Request.Context())
	if err != nil {
		h.respondCardError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *httpHandler) handleCardBySetAndNumber(c *gin.Context) {
	detail, err := h.cardService.CardBySetAndNumber(
		c.Request.Context(), c.Param("code"), c.Param("number"))
	if err != nil {
		h.respondCardError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *httpHandler) handleArenaID(c *gin.Context) {
	arenaID, err := h.cardService.ArenaID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondCardError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"arena_id": arenaID})
}

func (h *httpHandler) handlePrintings(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	printings, err := h.cardService.PrintingsByName(c.Request.Context(), name)
	if err != nil {
		h.logger.Error("printings lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "printings lookup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": name, "printings": printings})
}

func (h *httpHandler) handleSearch(c *gin.Context) {
	page, err := positiveQueryInt(c, "page", 1)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page"})
		return
	}
	pageSize, err := positiveQueryInt(c, "page_size", 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page_size"})
		return
	}

	query := cards.SearchQuery{
		Name:     c.Query("name"),
		Page:     page,
		PageSize: pageSize,
	}
	if colors := strings.TrimSpace(c.Query("colors")); colors != "" {
		query.Colors = strings.Split(strings.ToUpper(colors), ",")
	}

	result, err := h.cardService.SearchCards(c.Request.Context(), query)
	if err != nil {
		h.logger.Error("card search failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *httpHandler) respondCardError(c *gin.Context, err error) {
	if errors.Is(err, cards.ErrCardNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "card not found"})
		return
	}
	h.logger.Error("card lookup failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "card lookup failed"})
}

func positiveQueryInt(c *gin.Context, key string, fallback int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, errors.New("not a positive integer")
	}
	return value, nil
}
