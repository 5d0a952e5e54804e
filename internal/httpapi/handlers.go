package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/lifewheel/internal/account"
	"github.com/abhisek/lifewheel/internal/advice"
	"github.com/abhisek/lifewheel/internal/history"
	"github.com/abhisek/lifewheel/internal/store"
	"github.com/abhisek/lifewheel/internal/wheel"
)

// APIResponse is the envelope of every JSON reply.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

func fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, APIResponse{Success: false, Error: msg})
}

func (s *Server) handleHealth(c *gin.Context) {
	ok(c, gin.H{
		"status": "ok",
		"uptime": time.Since(s.startTime).Round(time.Second).String(),
	})
}

func (s *Server) handleCategories(c *gin.Context) {
	ok(c, s.deps.Categories.All())
}

// ClassifyRequest is the body of POST /api/classify.
type ClassifyRequest struct {
	Scores map[string]int `json:"scores" binding:"required"`
}

// ClassifyResponse is the classification of a submitted board.
type ClassifyResponse struct {
	wheel.Result
	Status string       `json:"status"`
	Scores wheel.Scores `json:"scores"`
}

func (s *Server) handleClassify(c *gin.Context) {
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	scores := make(wheel.Scores, len(req.Scores))
	for id, v := range req.Scores {
		scores[id] = wheel.Clamp(v)
	}

	res, err := wheel.Classify(s.deps.Categories, scores)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	settings, err := s.deps.Settings.Get(c.Request.Context())
	if err != nil {
		s.logger.Warn("settings unavailable, using defaults", "error", err)
		settings = advice.DefaultSettings()
	}

	ok(c, ClassifyResponse{
		Result: res,
		Status: advice.StatusFor(res.Label, settings),
		Scores: scores,
	})
}

// UserView is a stored account as listed to administrators.
type UserView struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Age     int    `json:"age"`
	Email   string `json:"email,omitempty"`
	Role    string `json:"role"`
	Entries int    `json:"entries"`
}

func (s *Server) handleListUsers(c *gin.Context) {
	ctx := c.Request.Context()
	users, err := s.deps.Users.List(ctx)
	if err != nil {
		s.internalError(c, "list users", err)
		return
	}
	all, err := s.deps.History.ListAll(ctx)
	if err != nil {
		s.internalError(c, "list history", err)
		return
	}
	counts := make(map[string]int)
	for _, e := range all {
		counts[e.UserID]++
	}

	out := make([]UserView, len(users))
	for i, u := range users {
		out[i] = UserView{
			ID:      u.ID,
			Name:    u.Name,
			Contact: u.Contact,
			Age:     u.Age,
			Email:   u.Email,
			Role:    u.Role,
			Entries: counts[u.ID],
		}
	}
	ok(c, out)
}

func (s *Server) userEntries(c *gin.Context) ([]wheel.Entry, bool) {
	ctx := c.Request.Context()
	id := c.Param("id")
	if _, err := s.deps.Users.Get(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			fail(c, http.StatusNotFound, "user not found")
		} else {
			s.internalError(c, "get user", err)
		}
		return nil, false
	}
	entries, err := s.deps.History.ListByUser(ctx, id)
	if err != nil {
		s.internalError(c, "list user history", err)
		return nil, false
	}
	return entries, true
}

func (s *Server) handleUserHistory(c *gin.Context) {
	entries, found := s.userEntries(c)
	if !found {
		return
	}
	ok(c, entries)
}

func (s *Server) handleUserTrend(c *gin.Context) {
	window := history.DefaultWindow
	if v := c.Query("window"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			fail(c, http.StatusBadRequest, "window must be an integer")
			return
		}
		window = n
	}

	entries, found := s.userEntries(c)
	if !found {
		return
	}
	points := history.Trend(entries, s.deps.Categories, window)
	if points == nil {
		points = []history.TrendPoint{}
	}
	ok(c, gin.H{
		"window": window,
		"points": points,
		"delta":  history.Delta(points),
	})
}

func (s *Server) handleCategoryStats(c *gin.Context) {
	all, err := s.deps.History.ListAll(c.Request.Context())
	if err != nil {
		s.internalError(c, "list history", err)
		return
	}
	ok(c, gin.H{
		"averages": history.CrossUserCategoryAverages(all, s.deps.Categories),
		"summary":  history.Summarize(all, s.deps.Categories),
	})
}

func (s *Server) handleGetSettings(c *gin.Context) {
	settings, err := s.deps.Settings.Get(c.Request.Context())
	if err != nil {
		s.internalError(c, "get settings", err)
		return
	}
	ok(c, settings)
}

func (s *Server) handlePutSettings(c *gin.Context) {
	var in advice.Settings
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if err := in.Validate(); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.deps.Settings.Put(c.Request.Context(), in); err != nil {
		s.internalError(c, "put settings", err)
		return
	}

	admin, _ := c.Get(ctxIdentity)
	if id, isID := admin.(account.Identity); isID {
		s.logger.Info("settings updated", "by", id.UserID)
	}
	ok(c, in)
}

func (s *Server) internalError(c *gin.Context, op string, err error) {
	s.logger.Error(op+" failed", "error", err)
	fail(c, http.StatusInternalServerError, op+" failed")
}
