package http

import (
	"errors"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"exercise-tracker/internal/observability"
	"exercise-tracker/internal/service"
)

const (
	msgUsernameTaken   = "Username already taken"
	msgUserNotFound    = "User not found"
	msgServerError     = "Server error"
	msgSaveServerError = "Server error while saving exercise"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users     service.UserService
	exercises service.ExerciseService
	logger    *logrus.Logger
	metrics   *observability.Metrics
}

func NewHandler(users service.UserService, exercises service.ExerciseService, logger *logrus.Logger, metrics *observability.Metrics) *Handler {
	return &Handler{
		users:     users,
		exercises: exercises,
		logger:    logger,
		metrics:   metrics,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(requestIDMiddleware(), accessLogMiddleware(h.logger, h.metrics), corsMiddleware())

	api := router.Group("/api")
	{
		api.POST("/users", h.createUser)
		api.GET("/users", h.listUsers)
		api.POST("/users/:_id/exercises", h.addExercise)
		api.GET("/users/:_id/logs", h.getLogs)
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})
	}

	if h.metrics != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(h.metrics.Registry, promhttp.HandlerOpts{})))
	}
}

// RegisterStatic serves viewsDir/index.html at "/" and files under publicDir
// at their relative paths. Missing directories are skipped.
func (h *Handler) RegisterStatic(router *gin.Engine, publicDir, viewsDir string) {
	index := filepath.Join(viewsDir, "index.html")
	if _, err := os.Stat(index); err == nil {
		router.GET("/", func(c *gin.Context) {
			c.File(index)
		})
	} else {
		h.logger.Warnf("index page %s not found, skipping", index)
	}

	if fi, err := os.Stat(publicDir); err != nil || !fi.IsDir() {
		h.logger.Warnf("public directory %s not found, skipping static assets", publicDir)
		return
	}
	router.NoRoute(func(c *gin.Context) {
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
			name := filepath.Join(publicDir, filepath.FromSlash(path.Clean("/"+c.Request.URL.Path)))
			if fi, err := os.Stat(name); err == nil && !fi.IsDir() {
				c.File(name)
				return
			}
		}
		c.String(http.StatusNotFound, "Not Found")
	})
}

func (h *Handler) createUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.WithError(err).WithField("request_id", requestID(c)).Debug("bind create user request")
		req = createUserRequest{}
	}

	user, err := h.users.Create(c.Request.Context(), req.Username.String())
	if err != nil {
		h.fail(c, err, msgServerError)
		return
	}
	h.metrics.UserCreated()

	c.JSON(http.StatusOK, CreateUserResponse{Username: user.Username, ID: user.ID})
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, msgServerError)
		return
	}

	c.JSON(http.StatusOK, usersToResponse(users))
}

func (h *Handler) addExercise(c *gin.Context) {
	var req addExerciseRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.WithError(err).WithField("request_id", requestID(c)).Debug("bind add exercise request")
		req = addExerciseRequest{}
	}

	user, exercise, err := h.exercises.Add(c.Request.Context(), c.Param("_id"), service.AddExerciseInput{
		Description: req.Description.String(),
		Duration:    req.Duration.String(),
		Date:        req.Date.String(),
	})
	if err != nil {
		h.fail(c, err, msgSaveServerError)
		return
	}
	h.metrics.ExerciseLogged()

	c.JSON(http.StatusOK, exerciseToResponse(*user, *exercise))
}

func (h *Handler) getLogs(c *gin.Context) {
	log, err := h.exercises.Log(c.Request.Context(), c.Param("_id"), service.LogQuery{
		From:  c.Query("from"),
		To:    c.Query("to"),
		Limit: c.Query("limit"),
	})
	if err != nil {
		h.fail(c, err, msgServerError)
		return
	}

	c.JSON(http.StatusOK, logToResponse(log))
}

// fail maps service errors to plain-text responses. Anything unclassified is
// logged and answered with fallback so internals never reach the client.
func (h *Handler) fail(c *gin.Context, err error, fallback string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.String(http.StatusBadRequest, verr.Message)
	case errors.Is(err, service.ErrUsernameTaken):
		c.String(http.StatusBadRequest, msgUsernameTaken)
	case errors.Is(err, service.ErrUserNotFound):
		c.String(http.StatusNotFound, msgUserNotFound)
	default:
		h.logger.WithError(err).WithFields(logrus.Fields{
			"request_id": requestID(c),
			"route":      c.FullPath(),
		}).Error("unhandled store error")
		c.String(http.StatusInternalServerError, fallback)
	}
}
