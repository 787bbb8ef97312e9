package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/sednex/community-backend/internal/database"
	"github.com/sednex/community-backend/internal/models"
	"github.com/sednex/community-backend/internal/types"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(sqlite.Open(":memory:"), logger.Silent)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Every connection to :memory: is its own database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, role string) *types.Identity {
	t.Helper()
	subject := "uid-" + uuid.NewString()[:8]
	user := models.User{
		SubjectID: subject,
		Name:      "Test " + role,
		Email:     subject + "@example.com",
		Role:      role,
		IsActive:  true,
	}
	require.NoError(t, db.Create(&user).Error)
	return &types.Identity{
		UserID:    user.ID,
		SubjectID: user.SubjectID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
	}
}

func requireKind(t *testing.T, err error, kind types.ErrorKind, message string) {
	t.Helper()
	require.Error(t, err)
	var appErr *types.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, kind, appErr.Kind)
	if message != "" {
		require.Equal(t, message, appErr.Message)
	}
}

// memoryStore records uploads instead of storing them.
type memoryStore struct {
	mu      sync.Mutex
	uploads []string
}

func (m *memoryStore) Upload(_ context.Context, folder string, header *multipart.FileHeader) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	url := fmt.Sprintf("https://cdn.test/%s/%d-%s", folder, len(m.uploads), header.Filename)
	m.uploads = append(m.uploads, url)
	return url, nil
}

func imageHeader(name string) *multipart.FileHeader {
	return &multipart.FileHeader{
		Filename: name,
		Header:   textproto.MIMEHeader{"Content-Type": {"image/png"}},
		Size:     128,
	}
}
