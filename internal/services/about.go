package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sednex/community-backend/internal/models"
	"github.com/sednex/community-backend/internal/types"
	"gorm.io/gorm"
)

var (
	errTermsNotFound   = types.NotFound("Terms not found")
	errContactNotFound = types.NotFound("Contact information not found")
	errFaqNotFound     = types.NotFound("FAQ not found")
)

type TermsView struct {
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Version     string    `json:"version"`
	LastUpdated time.Time `json:"lastUpdated"`
}

type ContactView struct {
	Email       string    `json:"email"`
	Mobile      string    `json:"mobile"`
	Website     string    `json:"website"`
	LastUpdated time.Time `json:"lastUpdated"`
}

type FaqView struct {
	ID          uuid.UUID `json:"id"`
	Question    string    `json:"question"`
	Answer      string    `json:"answer"`
	LastUpdated time.Time `json:"lastUpdated"`
}

func NewTermsView(t *models.Terms) TermsView {
	return TermsView{Title: t.Title, Content: t.Content, Version: t.Version, LastUpdated: t.UpdatedAt}
}

func NewContactView(c *models.Contact) ContactView {
	return ContactView{Email: c.Email, Mobile: c.Mobile, Website: c.Website, LastUpdated: c.UpdatedAt}
}

func NewFaqView(f *models.Faq) FaqView {
	return FaqView{ID: f.ID, Question: f.Question, Answer: f.Answer, LastUpdated: f.UpdatedAt}
}

type AboutService struct {
	db *gorm.DB
}

func NewAboutService(db *gorm.DB) *AboutService {
	return &AboutService{db: db}
}

type textField struct {
	key, label string
}

// requiredTexts reads every field, failing on the first blank one.
func requiredTexts(fields Fields, specs ...textField) (map[string]string, error) {
	values := make(map[string]string, len(specs))
	for _, spec := range specs {
		value, err := fields.Required(spec.key, spec.label+" is required")
		if err != nil {
			return nil, err
		}
		values[spec.key] = value
	}
	return values, nil
}

// optionalTexts collects provided fields, rejecting provided blanks.
func optionalTexts(fields Fields, specs ...textField) (map[string]interface{}, error) {
	updates := map[string]interface{}{}
	for _, spec := range specs {
		value, ok, err := fields.Optional(spec.key, spec.label+" cannot be empty")
		if err != nil {
			return nil, err
		}
		if ok {
			updates[spec.key] = value
		}
	}
	if len(updates) == 0 {
		return nil, errNothingToUpdate
	}
	return updates, nil
}

var (
	termsFields   = []textField{{"title", "Title"}, {"content", "Content"}, {"version", "Version"}}
	contactFields = []textField{{"email", "Email"}, {"mobile", "Mobile"}, {"website", "Website"}}
	faqFields     = []textField{{"question", "Question"}, {"answer", "Answer"}}
)

// createSingleton inserts row unless a row of the same table exists. The
// unique singleton column catches a concurrent insert.
func (s *AboutService) createSingleton(ctx context.Context, row interface{}, exists error) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(row).Count(&count).Error; err != nil {
		return fmt.Errorf("check singleton: %w", err)
	}
	if count > 0 {
		return exists
	}
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return exists
		}
		return fmt.Errorf("create singleton: %w", err)
	}
	return nil
}

func (s *AboutService) firstRow(ctx context.Context, dest interface{}, notFound error) error {
	if err := s.db.WithContext(ctx).First(dest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound
		}
		return fmt.Errorf("find row: %w", err)
	}
	return nil
}

func (s *AboutService) updateFirst(ctx context.Context, dest interface{}, updates map[string]interface{}, notFound error) error {
	if err := s.firstRow(ctx, dest, notFound); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Model(dest).Updates(updates).Error; err != nil {
		return fmt.Errorf("update row: %w", err)
	}
	return s.db.WithContext(ctx).First(dest).Error
}

func (s *AboutService) deleteAll(ctx context.Context, model interface{}, notFound error) error {
	result := s.db.WithContext(ctx).Where("1 = 1").Delete(model)
	if result.Error != nil {
		return fmt.Errorf("delete row: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound
	}
	return nil
}

func (s *AboutService) CreateTerms(ctx context.Context, fields Fields) (*models.Terms, error) {
	values, err := requiredTexts(fields, termsFields...)
	if err != nil {
		return nil, err
	}
	terms := &models.Terms{
		Singleton: true,
		Title:     values["title"],
		Content:   values["content"],
		Version:   values["version"],
	}
	if err := s.createSingleton(ctx, terms, types.Conflict("Terms already exist. Use update instead")); err != nil {
		return nil, err
	}
	return terms, nil
}

func (s *AboutService) UpdateTerms(ctx context.Context, fields Fields) (*models.Terms, error) {
	updates, err := optionalTexts(fields, termsFields...)
	if err != nil {
		return nil, err
	}
	var terms models.Terms
	if err := s.updateFirst(ctx, &terms, updates, errTermsNotFound); err != nil {
		return nil, err
	}
	return &terms, nil
}

func (s *AboutService) GetTerms(ctx context.Context) (*models.Terms, error) {
	var terms models.Terms
	if err := s.firstRow(ctx, &terms, errTermsNotFound); err != nil {
		return nil, err
	}
	return &terms, nil
}

func (s *AboutService) DeleteTerms(ctx context.Context) error {
	return s.deleteAll(ctx, &models.Terms{}, errTermsNotFound)
}

func (s *AboutService) CreateContact(ctx context.Context, fields Fields) (*models.Contact, error) {
	values, err := requiredTexts(fields, contactFields...)
	if err != nil {
		return nil, err
	}
	contact := &models.Contact{
		Singleton: true,
		Email:     values["email"],
		Mobile:    values["mobile"],
		Website:   values["website"],
	}
	if err := s.createSingleton(ctx, contact, types.Conflict("Contact information already exists. Use update instead")); err != nil {
		return nil, err
	}
	return contact, nil
}

func (s *AboutService) UpdateContact(ctx context.Context, fields Fields) (*models.Contact, error) {
	updates, err := optionalTexts(fields, contactFields...)
	if err != nil {
		return nil, err
	}
	var contact models.Contact
	if err := s.updateFirst(ctx, &contact, updates, errContactNotFound); err != nil {
		return nil, err
	}
	return &contact, nil
}

func (s *AboutService) GetContact(ctx context.Context) (*models.Contact, error) {
	var contact models.Contact
	if err := s.firstRow(ctx, &contact, errContactNotFound); err != nil {
		return nil, err
	}
	return &contact, nil
}

func (s *AboutService) DeleteContact(ctx context.Context) error {
	return s.deleteAll(ctx, &models.Contact{}, errContactNotFound)
}

func (s *AboutService) CreateFaq(ctx context.Context, fields Fields) (*models.Faq, error) {
	values, err := requiredTexts(fields, faqFields...)
	if err != nil {
		return nil, err
	}
	conflict := types.Conflict("FAQ question already exists")

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Faq{}).Where("question = ?", values["question"]).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check faq: %w", err)
	}
	if count > 0 {
		return nil, conflict
	}

	faq := &models.Faq{Question: values["question"], Answer: values["answer"]}
	if err := s.db.WithContext(ctx).Create(faq).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflict
		}
		return nil, fmt.Errorf("create faq: %w", err)
	}
	return faq, nil
}

func (s *AboutService) UpdateFaq(ctx context.Context, id uuid.UUID, fields Fields) (*models.Faq, error) {
	updates, err := optionalTexts(fields, faqFields...)
	if err != nil {
		return nil, err
	}
	conflict := types.Conflict("Another FAQ with this question already exists")

	var faq models.Faq
	if err := s.db.WithContext(ctx).First(&faq, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errFaqNotFound
		}
		return nil, fmt.Errorf("find faq: %w", err)
	}

	if question, ok := updates["question"]; ok {
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.Faq{}).
			Where("question = ? AND id <> ?", question, id).
			Count(&count).Error; err != nil {
			return nil, fmt.Errorf("check faq: %w", err)
		}
		if count > 0 {
			return nil, conflict
		}
	}

	if err := s.db.WithContext(ctx).Model(&faq).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflict
		}
		return nil, fmt.Errorf("update faq: %w", err)
	}
	if err := s.db.WithContext(ctx).First(&faq, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("load faq: %w", err)
	}
	return &faq, nil
}

func (s *AboutService) ListFaqs(ctx context.Context) ([]models.Faq, error) {
	faqs := make([]models.Faq, 0)
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&faqs).Error; err != nil {
		return nil, fmt.Errorf("list faqs: %w", err)
	}
	return faqs, nil
}

func (s *AboutService) DeleteFaq(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&models.Faq{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("delete faq: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errFaqNotFound
	}
	return nil
}
