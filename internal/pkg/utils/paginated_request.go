package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type PageRequest struct {
	Size   int
	Token  int
	Offset int
}

// NewPageRequest reads optional page_size/page_token query parameters.
// Missing or unparsable values fall back to the first default-sized page.
func NewPageRequest(c *gin.Context) PageRequest {
	pageSize, err := strconv.Atoi(c.Query("page_size"))
	if err != nil || pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	pageToken, err := strconv.Atoi(c.Query("page_token"))
	if err != nil || pageToken < 0 {
		pageToken = 0
	}

	return PageRequest{
		Size:   pageSize,
		Token:  pageToken,
		Offset: pageSize * pageToken,
	}
}
