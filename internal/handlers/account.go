package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sanchari2023/AIFinverse-v8-sub000/internal/backend"
	"github.com/sanchari2023/AIFinverse-v8-sub000/internal/services"
)

// registerRequest is the account creation payload
type registerRequest struct {
	Name       string   `json:"name"`
	Email      string   `json:"email" binding:"required,email"`
	Password   string   `json:"password" binding:"required,min=8"`
	Market     string   `json:"market" binding:"required"`
	Strategies []string `json:"strategies"`
}

// Register creates an account and stages the strategy selection locally so
// the first alerts page load can pick it up
func (h *PageHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	staging, err := h.accountService.Register(c.Request.Context(), &backend.RegisterRequest{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Market:     req.Market,
		Strategies: req.Strategies,
	})
	if err != nil {
		log.Printf("Registration failed for %s: %v", req.Email, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": backend.UserMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":    staging.UserID,
		"market":     staging.Market,
		"strategies": staging.Strategies,
		"redirect":   services.PageRouteFor(staging.Market),
	})
}

// loginRequest is the session issuance payload
type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login passes credentials through to the backend and returns its session
// token
func (h *PageHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	session, err := h.accountService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		log.Printf("Login failed for %s: %v", req.Email, err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": backend.UserMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id": session.UserID,
		"token":   session.Token,
	})
}

// GetProfile serves the profile page: per-market strategies and watchlists
func (h *PageHandler) GetProfile(c *gin.Context) {
	userID := c.Param("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id parameter is required"})
		return
	}

	profile, err := h.profileService.Profile(c.Request.Context(), userID)
	if err != nil {
		log.Printf("Profile fetch failed for user %s: %v", userID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": backend.UserMessage(err)})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// subscribeRequest is the newsletter email capture payload
type subscribeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// Subscribe captures a newsletter email
func (h *PageHandler) Subscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A valid email is required"})
		return
	}

	if err := h.newsletterService.Subscribe(c.Request.Context(), req.Email); err != nil {
		log.Printf("Newsletter subscribe failed for %s: %v", req.Email, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": backend.UserMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subscribed"})
}

// shareArticleRequest stores a shared-article pointer
type shareArticleRequest struct {
	ArticleID string `json:"article_id" binding:"required"`
	Title     string `json:"title"`
}

// ShareArticle stores the transient shared-article pointer used to deep-link
// an article across a redirect hop
func (h *PageHandler) ShareArticle(c *gin.Context) {
	var req shareArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "article_id is required"})
		return
	}

	if err := h.newsletterService.ShareArticle(req.ArticleID, req.Title); err != nil {
		log.Printf("Failed to store shared article %s: %v", req.ArticleID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store shared article"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Article shared"})
}

// GetSharedArticle reads the pending shared-article pointer, if any
func (h *PageHandler) GetSharedArticle(c *gin.Context) {
	article, ok := h.newsletterService.SharedArticle()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "No shared article pending"})
		return
	}
	c.JSON(http.StatusOK, article)
}
