package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/gotodo/internal/common"
	"github.com/dmitrijs2005/gotodo/internal/server/models"
)

type todoRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// todoUpdateRequest carries a partial update: absent fields stay unchanged.
type todoUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

type todoResponse struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toTodoResponse(t *models.Todo) todoResponse {
	return todoResponse{
		ID:          t.ID,
		OwnerID:     t.OwnerID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (s *Server) handleTodoCreate(c *gin.Context) {
	var req todoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := currentUser(c)
	todo, err := s.todos.Create(c.Request.Context(), user.ID, req.Title, req.Description, req.Completed)
	if err != nil {
		s.logger.Error(c.Request.Context(), "todo create failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, toTodoResponse(todo))
}

func (s *Server) handleTodoList(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	user := currentUser(c)
	todos, err := s.todos.List(c.Request.Context(), user.ID, skip, limit)
	if err != nil {
		s.logger.Error(c.Request.Context(), "todo list failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	result := make([]todoResponse, 0, len(todos))
	for _, t := range todos {
		result = append(result, toTodoResponse(t))
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleTodoGet(c *gin.Context) {
	user := currentUser(c)
	todo, err := s.todos.Get(c.Request.Context(), c.Param("id"), user.ID)
	if err != nil {
		s.respondTodoError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTodoResponse(todo))
}

func (s *Server) handleTodoUpdate(c *gin.Context) {
	var req todoUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := currentUser(c)
	update := &models.TodoUpdate{Title: req.Title, Description: req.Description, Completed: req.Completed}
	todo, err := s.todos.Update(c.Request.Context(), c.Param("id"), user.ID, update)
	if err != nil {
		s.respondTodoError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTodoResponse(todo))
}

func (s *Server) handleTodoDelete(c *gin.Context) {
	user := currentUser(c)
	if err := s.todos.Delete(c.Request.Context(), c.Param("id"), user.ID); err != nil {
		s.respondTodoError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Todo deleted successfully"})
}

func (s *Server) respondTodoError(c *gin.Context, err error) {
	if errors.Is(err, common.ErrorNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
		return
	}
	s.logger.Error(c.Request.Context(), "todo operation failed", "error", err.Error())
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
