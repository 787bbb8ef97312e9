package middleware

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sednex/community-backend/internal/services"
	"github.com/sednex/community-backend/internal/utils"
)

const (
	uploadedFilesKey = "uploadedFiles"
	multipartMemory  = 32 << 20
	megabyte         = 1 << 20
)

// UploadPolicy describes which multipart file fields a route accepts and
// how many and how large they may be.
type UploadPolicy struct {
	Fields      []string
	MaxFiles    int
	MaxSize     int64
	TooLarge    string
	TooMany     string
	MatchPrefix bool
}

var (
	ProductImages = UploadPolicy{
		Fields:      []string{"image", "images"},
		MaxFiles:    3,
		MaxSize:     5 * megabyte,
		TooLarge:    "Each image must be less than 5MB",
		TooMany:     "You can upload up to 3 images per product",
		MatchPrefix: true,
	}
	TouristImage = UploadPolicy{
		Fields:   []string{"image"},
		MaxFiles: 1,
		MaxSize:  5 * megabyte,
		TooLarge: "Image must be less than 5MB",
		TooMany:  "Only one image can be uploaded",
	}
	ProfileImage = UploadPolicy{
		Fields:   []string{"image"},
		MaxFiles: 1,
		MaxSize:  2 * megabyte,
		TooLarge: "Image must be less than 2MB",
		TooMany:  "Only one image can be uploaded",
	}
)

func (p UploadPolicy) accepts(field string) bool {
	for _, name := range p.Fields {
		if field == name || (p.MatchPrefix && strings.HasPrefix(field, name+"[")) {
			return true
		}
	}
	return false
}

// ImageUpload parses multipart bodies and keeps the files allowed by policy.
// Files on other fields are ignored. Requests that are not multipart pass
// through untouched.
func ImageUpload(policy UploadPolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
			c.Next()
			return
		}
		if err := c.Request.ParseMultipartForm(multipartMemory); err != nil {
			utils.SendValidationError(c, "Invalid multipart body")
			c.Abort()
			return
		}

		var fields []string
		for field := range c.Request.MultipartForm.File {
			if policy.accepts(field) {
				fields = append(fields, field)
			}
		}
		sortFields(fields)

		var accepted []*multipart.FileHeader
		for _, field := range fields {
			accepted = append(accepted, c.Request.MultipartForm.File[field]...)
		}

		if len(accepted) > policy.MaxFiles {
			utils.SendValidationError(c, policy.TooMany)
			c.Abort()
			return
		}
		for _, header := range accepted {
			if header.Size > policy.MaxSize {
				utils.SendValidationError(c, policy.TooLarge)
				c.Abort()
				return
			}
			if !services.IsAllowedImage(header) {
				utils.SendError(c, http.StatusBadRequest, fmt.Sprintf("Unsupported image type: %s", header.Filename))
				c.Abort()
				return
			}
		}

		c.Set(uploadedFilesKey, accepted)
		c.Next()
	}
}

// sortFields orders field names so that images[2] sorts before images[10].
func sortFields(fields []string) {
	index := func(field string) (string, int) {
		open := strings.IndexByte(field, '[')
		if open < 0 {
			return field, -1
		}
		n, err := strconv.Atoi(strings.TrimSuffix(field[open+1:], "]"))
		if err != nil {
			return field, -1
		}
		return field[:open], n
	}
	sort.Slice(fields, func(i, j int) bool {
		ni, ii := index(fields[i])
		nj, ij := index(fields[j])
		if ni != nj {
			return ni < nj
		}
		if ii != ij {
			return ii < ij
		}
		return fields[i] < fields[j]
	})
}

// UploadedFiles returns the files accepted by ImageUpload.
func UploadedFiles(c *gin.Context) []*multipart.FileHeader {
	value, ok := c.Get(uploadedFilesKey)
	if !ok {
		return nil
	}
	files, _ := value.([]*multipart.FileHeader)
	return files
}

// UploadedFile returns the first accepted file, or nil.
func UploadedFile(c *gin.Context) *multipart.FileHeader {
	files := UploadedFiles(c)
	if len(files) == 0 {
		return nil
	}
	return files[0]
}
