package services

import (
	"strings"

	"github.com/google/uuid"
	"github.com/sednex/community-backend/internal/types"
	"github.com/sednex/community-backend/internal/utils"
)

// Fields is a decoded request body. JSON, urlencoded and multipart bodies
// all land here so that validators can tell an absent key from an empty one.
type Fields map[string]any

func (f Fields) Has(key string) bool {
	_, ok := f[key]
	return ok
}

// HasField reports whether name was sent either as a plain key or as any
// indexed key such as name[0] or name[0][key].
func (f Fields) HasField(name string) bool {
	if f.Has(name) {
		return true
	}
	prefix := name + "["
	for key := range f {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}

func (f Fields) Text(key string) string {
	return utils.TrimToEmpty(f[key])
}

func (f Fields) HasAny(keys ...string) bool {
	for _, key := range keys {
		if f.Has(key) {
			return true
		}
	}
	return false
}

// Required returns the trimmed value of key or a BadRequest with message
// when it is absent or blank.
func (f Fields) Required(key, message string) (string, error) {
	value := f.Text(key)
	if value == "" {
		return "", types.BadRequest(message)
	}
	return value, nil
}

// Optional returns the trimmed value when key was provided. A provided but
// blank value is a BadRequest with emptyMessage.
func (f Fields) Optional(key, emptyMessage string) (string, bool, error) {
	if !f.Has(key) {
		return "", false, nil
	}
	value := f.Text(key)
	if value == "" {
		return "", true, types.BadRequest(emptyMessage)
	}
	return value, true, nil
}

func ParseID(raw, message string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, types.BadRequest(message)
	}
	return id, nil
}

func requireCaller(identity *types.Identity) error {
	if identity == nil || identity.UserID == uuid.Nil {
		return types.Unauthorized("Authentication required")
	}
	return nil
}

var errNothingToUpdate = types.BadRequest("Provide at least one field to update")
