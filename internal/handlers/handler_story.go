package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/storynest/storynest-backend/internal/apperrors"
	portssvc "github.com/storynest/storynest-backend/internal/core/ports/services"
	"github.com/storynest/storynest-backend/internal/dto"
	"github.com/storynest/storynest-backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// storyHandler handles HTTP requests for story metadata.
type storyHandler struct {
	storyService portssvc.StorySvcFacade
}

// newStoryHandler creates a new storyHandler.
func newStoryHandler(ss portssvc.StorySvcFacade) *storyHandler {
	return &storyHandler{storyService: ss}
}

// registerStoryRoutes registers all story-related routes.
func registerStoryRoutes(rg *gin.RouterGroup, storyService portssvc.StorySvcFacade) {
	h := newStoryHandler(storyService)

	stories := rg.Group("/stories")
	{
		stories.POST("", h.createStory)
		stories.GET("", h.listStories)
		stories.PUT("/:id", h.updateStory)
		stories.DELETE("/:id", h.deleteStory)
	}
}

// registerStoryReadRoutes registers the story detail route. It sits behind
// optional authentication so public stories are readable without a session.
func registerStoryReadRoutes(rg *gin.RouterGroup, storyService portssvc.StorySvcFacade) {
	h := newStoryHandler(storyService)
	rg.GET("/stories/:id", h.getStory)
}

// respondStoryError translates story service errors to HTTP.
func respondStoryError(c *gin.Context, logger *slog.Logger, err error, action string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Story not found"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
	default:
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to " + action})
	}
}

// createStory godoc
// @Summary Create a story
// @Description Creates a story record owned by the caller.
// @Tags stories
// @Accept json
// @Produce json
// @Param story body dto.CreateStoryRequest true "Story metadata"
// @Success 201 {object} dto.StoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /stories [post]
func (h *storyHandler) createStory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	user, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	story, err := h.storyService.CreateStory(c.Request.Context(), user, req)
	if err != nil {
		respondStoryError(c, logger, err, "create story")
		return
	}
	c.JSON(http.StatusCreated, dto.ToStoryResponse(story))
}

// listStories godoc
// @Summary List own stories
// @Description Lists the caller's stories, newest first.
// @Tags stories
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListStoriesResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /stories [get]
func (h *storyHandler) listStories(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	user, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ListStoriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	stories, err := h.storyService.ListStories(c.Request.Context(), user, params.Limit, params.Offset)
	if err != nil {
		respondStoryError(c, logger, err, "list stories")
		return
	}

	resp := dto.ListStoriesResponse{Stories: make([]dto.StoryResponse, 0, len(stories))}
	for i := range stories {
		resp.Stories = append(resp.Stories, dto.ToStoryResponse(&stories[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// getStory godoc
// @Summary Get a story
// @Description Retrieves a story the caller owns, a public story, or any story for admins. Public stories need no session.
// @Tags stories
// @Produce json
// @Param id path string true "Story ID"
// @Success 200 {object} dto.StoryResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /stories/{id} [get]
func (h *storyHandler) getStory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	// Anonymous callers get a nil user; the access rule handles that.
	user, _ := middleware.GetUserFromContext(c)

	story, err := h.storyService.GetStory(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		respondStoryError(c, logger, err, "retrieve story")
		return
	}
	c.JSON(http.StatusOK, dto.ToStoryResponse(story))
}

// updateStory godoc
// @Summary Update a story
// @Description Applies metadata changes. Owner or admin only; a public story grants read access, not write.
// @Tags stories
// @Accept json
// @Produce json
// @Param id path string true "Story ID"
// @Param story body dto.UpdateStoryRequest true "Story changes"
// @Success 200 {object} dto.StoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /stories/{id} [put]
func (h *storyHandler) updateStory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	user, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	story, err := h.storyService.UpdateStory(c.Request.Context(), user, c.Param("id"), req)
	if err != nil {
		respondStoryError(c, logger, err, "update story")
		return
	}
	c.JSON(http.StatusOK, dto.ToStoryResponse(story))
}

// deleteStory godoc
// @Summary Delete a story
// @Description Removes a story. Owner or admin only.
// @Tags stories
// @Produce json
// @Param id path string true "Story ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /stories/{id} [delete]
func (h *storyHandler) deleteStory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	user, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.storyService.DeleteStory(c.Request.Context(), user, c.Param("id")); err != nil {
		respondStoryError(c, logger, err, "delete story")
		return
	}
	c.Status(http.StatusNoContent)
}
