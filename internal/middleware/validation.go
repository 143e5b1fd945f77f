package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/mentoraid/internal/app/models/dto"
)

// ContextValidatedBody holds the request body bound by ValidateRequest
const ContextValidatedBody = "validatedBody"

// ValidateRequest binds the JSON body into a fresh value from newObj and
// rejects the request when binding or validation fails
func ValidateRequest[T any](newObj func() *T) gin.HandlerFunc {
	return func(c *gin.Context) {
		obj := newObj()
		if err := c.ShouldBindJSON(obj); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
			return
		}

		c.Set(ContextValidatedBody, obj)
		c.Next()
	}
}

// ValidatedBody returns the body bound by ValidateRequest
func ValidatedBody[T any](c *gin.Context) (*T, bool) {
	value, ok := c.Get(ContextValidatedBody)
	if !ok {
		return nil, false
	}
	obj, ok := value.(*T)
	return obj, ok
}
