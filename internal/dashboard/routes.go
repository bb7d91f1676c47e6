package dashboard

import (
	"errors"
	"io/fs"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/zulandar/podium/internal/messaging"
	"github.com/zulandar/podium/internal/session"
	"gorm.io/gorm"
)

// registerRoutes sets up all dashboard routes on the Gin router.
func registerRoutes(router *gin.Engine, db *gorm.DB, clk clockwork.Clock) {
	// Embedded static assets (served from assets/ subdir of the embed.FS).
	staticFS, _ := fs.Sub(assetsFS, "assets")
	router.StaticFS("/static", http.FS(staticFS))

	// Pages.
	router.GET("/", handleDisplay())
	router.GET("/admin", handleAdmin())

	// Display API.
	router.GET("/api/state", handleState(db, clk))
	router.GET("/api/events", handleSSE(db, clk))

	// Control surface.
	router.GET("/api/sessions", handleSessionList(db))
	router.POST("/api/sessions", handleSessionCreate(db))
	router.PUT("/api/sessions", handleSessionUpdateByBody(db))
	router.PUT("/api/sessions/:id", handleSessionUpdate(db))
	router.DELETE("/api/sessions/:id", handleSessionDelete(db))
	router.POST("/api/sessions/reset", handleSessionReset(db))

	router.GET("/api/messages", handleMessageList(db))
	router.POST("/api/messages", handleMessageCreate(db))
	router.PUT("/api/messages/:id", handleMessageUpdate(db))
	router.DELETE("/api/messages/:id", handleMessageDelete(db))
}

func handleDisplay() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "layout.html", gin.H{
			"page": "display",
		})
	}
}

func handleAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "layout.html", gin.H{
			"page": "admin",
		})
	}
}

// apiError maps store errors onto HTTP status codes.
func apiError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, session.ErrNotFound), errors.Is(err, messaging.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, session.ErrMissingField),
		errors.Is(err, session.ErrInvalidRange),
		errors.Is(err, messaging.ErrEmptyContent):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

func handleState(db *gorm.DB, clk clockwork.Clock) gin.HandlerFunc {
	return func(c *gin.Context) {
		ds, err := CurrentState(db, clk.Now())
		if err != nil {
			apiError(c, err)
			return
		}
		c.JSON(http.StatusOK, ds)
	}
}

// --- sessions ---

type sessionRequest struct {
	Title     *string `json:"title"`
	StartTime *string `json:"startTime"`
	EndTime   *string `json:"endTime"`
	Active    *bool   `json:"active"`
}

func handleSessionList(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessions, err := session.List(db)
		if err != nil {
			apiError(c, err)
			return
		}
		views := make([]SessionView, len(sessions))
		for i := range sessions {
			views[i] = *sessionView(&sessions[i])
		}
		c.JSON(http.StatusOK, views)
	}
}

func handleSessionCreate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req sessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		var title, start, end string
		var active bool
		if req.Title != nil {
			title = *req.Title
		}
		if req.StartTime != nil {
			start = *req.StartTime
		}
		if req.EndTime != nil {
			end = *req.EndTime
		}
		if req.Active != nil {
			active = *req.Active
		}
		s, err := session.Create(db, title, start, end, active)
		if err != nil {
			apiError(c, err)
			return
		}
		c.JSON(http.StatusCreated, sessionView(s))
	}
}

// handleSessionUpdateByBody accepts the id in the request body instead of
// the path, matching the older admin client.
func handleSessionUpdateByBody(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			ID uint `json:"id"`
			sessionRequest
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if req.ID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
			return
		}
		s, err := session.Update(db, req.ID, session.UpdateOpts{
			Title:     req.Title,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
			Active:    req.Active,
		})
		if err != nil {
			apiError(c, err)
			return
		}
		c.JSON(http.StatusOK, sessionView(s))
	}
}

func handleSessionUpdate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var req sessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		s, err := session.Update(db, id, session.UpdateOpts{
			Title:     req.Title,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
			Active:    req.Active,
		})
		if err != nil {
			apiError(c, err)
			return
		}
		c.JSON(http.StatusOK, sessionView(s))
	}
}

func handleSessionDelete(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		if err := session.Delete(db, id); err != nil {
			apiError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func handleSessionReset(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		n, err := session.Reset(db)
		if err != nil {
			apiError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"deactivated": n})
	}
}

// --- messages ---

type messageRequest struct {
	Content   *string `json:"content"`
	IsVisible *bool   `json:"isVisible"`
}

func handleMessageList(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		feed, err := messaging.Visible(db)
		if err != nil {
			apiError(c, err)
			return
		}
		views := make([]MessageView, len(feed))
		for i := range feed {
			views[i] = *messageView(&feed[i])
		}
		c.JSON(http.StatusOK, views)
	}
}

func handleMessageCreate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req messageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		var content string
		if req.Content != nil {
			content = *req.Content
		}
		msg, err := messaging.Broadcast(db, content)
		if err != nil {
			apiError(c, err)
			return
		}
		c.JSON(http.StatusCreated, messageView(msg))
	}
}

func handleMessageUpdate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var req messageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		msg, err := messaging.Update(db, id, messaging.UpdateOpts{
			Content:   req.Content,
			IsVisible: req.IsVisible,
		})
		if err != nil {
			apiError(c, err)
			return
		}
		c.JSON(http.StatusOK, messageView(msg))
	}
}

func handleMessageDelete(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		if err := messaging.Delete(db, id); err != nil {
			apiError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
