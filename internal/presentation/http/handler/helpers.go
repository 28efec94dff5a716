package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jewelsoft/estima-api/internal/domain/entity"
)

// GetOperator builds the operator identity from the values the auth
// middleware stored in the Gin context. The second return is false
// when the request is unauthenticated.
func GetOperator(c *gin.Context) (entity.Operator, bool) {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return entity.Operator{}, false
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return entity.Operator{}, false
	}

	op := entity.Operator{UserID: userID}
	if v, exists := c.Get("username"); exists {
		if s, ok := v.(string); ok {
			op.Username = s
		}
	}
	if v, exists := c.Get("counter_id"); exists {
		if n, ok := v.(int); ok {
			op.CounterID = n
		}
	}
	return op, true
}

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}
