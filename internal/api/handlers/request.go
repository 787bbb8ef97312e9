package handlers

import (
	"errors"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sednex/community-backend/internal/services"
	"github.com/sednex/community-backend/internal/types"
)

const multipartMemory = 32 << 20

var errInvalidBody = types.BadRequest("Invalid request body")

// readFields decodes a JSON, urlencoded or multipart body into Fields. An
// empty body yields empty Fields. Repeated form keys become lists.
func readFields(c *gin.Context) (services.Fields, error) {
	switch contentType := c.ContentType(); {
	case strings.HasPrefix(contentType, "multipart/form-data"):
		if c.Request.MultipartForm == nil {
			if err := c.Request.ParseMultipartForm(multipartMemory); err != nil {
				return nil, errInvalidBody
			}
		}
		return formFields(c.Request.MultipartForm.Value), nil
	case contentType == "application/x-www-form-urlencoded":
		if err := c.Request.ParseForm(); err != nil {
			return nil, errInvalidBody
		}
		return formFields(c.Request.PostForm), nil
	default:
		fields := services.Fields{}
		if c.Request.Body == nil || c.Request.ContentLength == 0 {
			return fields, nil
		}
		if err := c.ShouldBindJSON(&fields); err != nil {
			if errors.Is(err, io.EOF) {
				return services.Fields{}, nil
			}
			return nil, errInvalidBody
		}
		return fields, nil
	}
}

func formFields(values map[string][]string) services.Fields {
	fields := make(services.Fields, len(values))
	for key, list := range values {
		if len(list) == 1 {
			fields[key] = list[0]
			continue
		}
		items := make([]any, len(list))
		for i, v := range list {
			items[i] = v
		}
		fields[key] = items
	}
	return fields
}

func pathID(c *gin.Context, name, message string) (uuid.UUID, error) {
	return services.ParseID(c.Param(name), message)
}
