package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ListResponse[T any] struct {
	Success bool `json:"success"`
	Data    []T  `json:"data"`
	Total   int  `json:"total"`
}

// OK merges fields into a success envelope.
func OK(c *gin.Context, fields gin.H) {
	Status(c, http.StatusOK, fields)
}

func Created(c *gin.Context, fields gin.H) {
	Status(c, http.StatusCreated, fields)
}

func Status(c *gin.Context, status int, fields gin.H) {
	out := gin.H{"success": true}
	for k, v := range fields {
		out[k] = v
	}
	c.JSON(status, out)
}

func List[T any](c *gin.Context, data []T) {
	if data == nil {
		data = []T{}
	}
	c.JSON(http.StatusOK, ListResponse[T]{
		Success: true,
		Data:    data,
		Total:   len(data),
	})
}
