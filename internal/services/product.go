package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sednex/community-backend/internal/models"
	"github.com/sednex/community-backend/internal/types"
	"github.com/sednex/community-backend/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const QueryTimeout = 30 * time.Second

var (
	errProductNotFound  = types.NotFound("Product not found")
	errInvalidProductID = types.BadRequest("Invalid product id")
	errProductSlugTaken = types.Conflict("Product slug must be unique")
)

type ProductService struct {
	db     *gorm.DB
	images ImageStore
}

func NewProductService(db *gorm.DB, images ImageStore) *ProductService {
	if db == nil {
		panic("database connection cannot be nil")
	}
	return &ProductService{
		db:     db,
		images: images,
	}
}

type ProductFilter struct {
	Search   string
	Category string
	MinPrice string
	MaxPrice string
	Badge    string
	Page     Page
}

type ProductList struct {
	Products   []models.Product
	Total      int64
	Page       int
	TotalPages int
}

// CreateProduct validates the form, uploads files and stores the product.
// Uploaded URLs are appended after any URLs sent in the body.
func (s *ProductService) CreateProduct(ctx context.Context, fields Fields, files []*multipart.FileHeader) (*models.Product, error) {
	name, err := fields.Required("name", "Product name is required")
	if err != nil {
		return nil, err
	}

	price, ok := utils.ParseNumber(fields["price"])
	if !ok || price < 0 {
		return nil, types.BadRequest("Valid product price is required")
	}

	var discount *float64
	if d, ok := utils.ParseNumber(fields["discountPrice"]); ok {
		if d < 0 {
			return nil, types.BadRequest("Discount price must be positive")
		}
		if d > price {
			return nil, types.BadRequest("Discount price cannot exceed price")
		}
		discount = &d
	}

	var categoryID *uuid.UUID
	if fields.Has("category") {
		category, err := resolveCategory(s.db.WithContext(ctx), fields.Text("category"))
		if err != nil {
			return nil, err
		}
		categoryID = &category.ID
	}

	stock, ok := utils.ParseNumber(fields["stock"])
	if ok && stock < 0 {
		return nil, types.BadRequest("Stock cannot be negative")
	}

	bodyImages := collectBodyImages(fields)
	if len(bodyImages) == 0 && len(files) == 0 {
		return nil, types.BadRequest("At least one product image is required")
	}

	uploaded, err := UploadAll(ctx, s.images, FolderProducts, files)
	if err != nil {
		return nil, fmt.Errorf("upload product images: %w", err)
	}

	product := &models.Product{
		Name:           name,
		Slug:           utils.Slugify(name),
		Description:    fields.Text("description"),
		Price:          price,
		DiscountPrice:  discount,
		CategoryID:     categoryID,
		Images:         uniqueStrings(append(bodyImages, uploaded...)),
		Brand:          fields.Text("brand"),
		Specifications: normalizeSpecifications(fields),
		ColorVariants:  normalizeColorVariants(fields),
		Stock:          stock,
		Badges:         normalizeBadges(fields),
		IsActive:       true,
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(product).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errProductSlugTaken
		}
		return nil, fmt.Errorf("create product: %w", err)
	}
	return s.load(ctx, product.ID)
}

// ListProducts returns active products newest first. A category that does
// not resolve yields an empty page rather than an error.
func (s *ProductService) ListProducts(ctx context.Context, filter ProductFilter) (*ProductList, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeout)
	defer cancel()

	empty := &ProductList{Products: []models.Product{}, Page: filter.Page.Page}

	query := s.db.WithContext(ctx).Model(&models.Product{}).Where("is_active = ?", true)
	query, matched, err := s.applyFilters(ctx, query, filter)
	if err != nil {
		return nil, err
	}
	if !matched {
		return empty, nil
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}
	if total == 0 {
		return empty, nil
	}

	products := make([]models.Product, 0)
	if err := query.Session(&gorm.Session{}).
		Preload("Category").
		Order("created_at DESC").
		Offset(filter.Page.Offset()).
		Limit(filter.Page.Limit).
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	return &ProductList{
		Products:   products,
		Total:      total,
		Page:       filter.Page.Page,
		TotalPages: filter.Page.TotalPages(total),
	}, nil
}

func (s *ProductService) applyFilters(ctx context.Context, query *gorm.DB, filter ProductFilter) (*gorm.DB, bool, error) {
	if search := strings.TrimSpace(filter.Search); search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	if category := strings.TrimSpace(filter.Category); category != "" {
		if id, err := uuid.Parse(category); err == nil {
			query = query.Where("category_id = ?", id)
		} else {
			var found models.Category
			err := s.db.WithContext(ctx).
				Where("slug = ? AND is_active = ?", strings.ToLower(category), true).
				First(&found).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return query, false, nil
			}
			if err != nil {
				return nil, false, fmt.Errorf("find category: %w", err)
			}
			query = query.Where("category_id = ?", found.ID)
		}
	}

	if minPrice, ok := utils.ParseNumber(filter.MinPrice); ok {
		query = query.Where("price >= ?", minPrice)
	}
	if maxPrice, ok := utils.ParseNumber(filter.MaxPrice); ok {
		query = query.Where("price <= ?", maxPrice)
	}

	if badge := strings.ToLower(strings.TrimSpace(filter.Badge)); allowedBadges[badge] {
		query = query.Where("CAST(badges AS TEXT) LIKE ?", `%"`+badge+`"%`)
	}

	return query, true, nil
}

// GetProduct looks up an active product by id or slug and reports whether
// caller has loved it.
func (s *ProductService) GetProduct(ctx context.Context, caller *types.Identity, idOrSlug string) (*models.Product, bool, error) {
	key := strings.TrimSpace(idOrSlug)
	if key == "" {
		return nil, false, types.BadRequest("Invalid product identifier")
	}

	query := s.db.WithContext(ctx).Where("is_active = ?", true)
	if id, err := uuid.Parse(key); err == nil {
		query = query.Where("id = ?", id)
	} else {
		query = query.Where("slug = ?", strings.ToLower(key))
	}

	var product models.Product
	if err := query.
		Preload("Category").
		Preload("Reviews", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Reviews.User").
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, errProductNotFound
		}
		return nil, false, fmt.Errorf("find product: %w", err)
	}

	if caller == nil {
		return &product, false, nil
	}
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.ProductLike{}).
		Where("product_id = ? AND user_id = ?", product.ID, caller.UserID).
		Count(&count).Error; err != nil {
		return nil, false, fmt.Errorf("check product love: %w", err)
	}
	return &product, count > 0, nil
}

var productUpdateFields = []string{
	"name", "description", "price", "discountPrice", "category", "brand",
	"specifications", "colorVariants", "badges", "stock", "isActive",
	"images", "existingImages", "keepImages",
}

// UpdateProduct applies only the fields present in the request. Images are
// replaced when any image field or file is sent.
func (s *ProductService) UpdateProduct(ctx context.Context, rawID string, fields Fields, files []*multipart.FileHeader) (*models.Product, error) {
	id, err := ParseID(rawID, "Invalid product id")
	if err != nil {
		return nil, err
	}

	provided := len(files) > 0
	for _, key := range productUpdateFields {
		if fields.HasField(key) {
			provided = true
			break
		}
	}
	if !provided {
		return nil, errNothingToUpdate
	}

	product, err := s.findActive(ctx, id)
	if err != nil {
		return nil, err
	}

	if fields.Has("name") {
		name := fields.Text("name")
		if name == "" {
			return nil, types.BadRequest("Product name cannot be empty")
		}
		if name != product.Name {
			product.Slug = utils.Slugify(name)
		}
		product.Name = name
	}

	if fields.Has("description") {
		product.Description = fields.Text("description")
	}

	if fields.Has("price") {
		price, ok := utils.ParseNumber(fields["price"])
		if !ok || price < 0 {
			return nil, types.BadRequest("Invalid product price")
		}
		product.Price = price
	}

	if fields.Has("discountPrice") {
		discount, ok := utils.ParseNumber(fields["discountPrice"])
		switch {
		case !ok:
			product.DiscountPrice = nil
		case discount < 0:
			return nil, types.BadRequest("Discount price must be positive")
		case discount > product.Price:
			return nil, types.BadRequest("Discount price cannot exceed price")
		default:
			product.DiscountPrice = &discount
		}
	}
	if product.DiscountPrice != nil && *product.DiscountPrice > product.Price {
		return nil, types.BadRequest("Discount price cannot exceed price")
	}

	if fields.Has("category") {
		if raw := fields.Text("category"); raw == "" {
			product.CategoryID = nil
		} else {
			category, err := resolveCategory(s.db.WithContext(ctx), raw)
			if err != nil {
				return nil, err
			}
			product.CategoryID = &category.ID
		}
	}

	replaceImages := len(files) > 0 ||
		fields.HasField("images") ||
		fields.HasField("existingImages") ||
		fields.HasField("keepImages")
	var bodyImages []string
	if replaceImages {
		bodyImages = collectBodyImages(fields)
		if len(bodyImages) == 0 && len(files) == 0 {
			return nil, types.BadRequest("Product must retain at least one image")
		}
	}

	if fields.Has("brand") {
		product.Brand = fields.Text("brand")
	}
	if fields.HasField("specifications") {
		product.Specifications = normalizeSpecifications(fields)
	}
	if fields.HasField("colorVariants") {
		product.ColorVariants = normalizeColorVariants(fields)
	}
	if fields.HasField("badges") {
		product.Badges = normalizeBadges(fields)
	}

	if fields.Has("stock") {
		if stock, ok := utils.ParseNumber(fields["stock"]); ok {
			if stock < 0 {
				return nil, types.BadRequest("Stock cannot be negative")
			}
			product.Stock = stock
		}
	}

	if fields.Has("isActive") {
		product.IsActive = utils.ParseBool(fields["isActive"])
	}

	if replaceImages {
		uploaded, err := UploadAll(ctx, s.images, FolderProducts, files)
		if err != nil {
			return nil, fmt.Errorf("upload product images: %w", err)
		}
		product.Images = uniqueStrings(append(bodyImages, uploaded...))
	}

	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(product).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errProductSlugTaken
		}
		return nil, fmt.Errorf("update product: %w", err)
	}

	var updated models.Product
	if err := s.db.WithContext(ctx).Preload("Category").First(&updated, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("load product: %w", err)
	}
	return &updated, nil
}

// DeleteProduct hides the product. Reviews and likes are kept.
func (s *ProductService) DeleteProduct(ctx context.Context, rawID string) error {
	id, err := ParseID(rawID, "Invalid product id")
	if err != nil {
		return err
	}
	if _, err := s.findActive(ctx, id); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Update("is_active", false).Error; err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// ToggleLove adds caller to the product's likedBy set or removes them from
// it. The returned count is the size of the set after the change.
func (s *ProductService) ToggleLove(ctx context.Context, caller *types.Identity, rawID string) (bool, int, error) {
	id, err := ParseID(rawID, "Invalid product id")
	if err != nil {
		return false, 0, err
	}
	if err := requireCaller(caller); err != nil {
		return false, 0, err
	}

	var loved bool
	var count int64
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").Where("id = ? AND is_active = ?", id, true).First(&models.Product{}).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errProductNotFound
			}
			return fmt.Errorf("find product: %w", err)
		}

		var like models.ProductLike
		err := tx.Where("product_id = ? AND user_id = ?", id, caller.UserID).First(&like).Error
		switch {
		case err == nil:
			if err := tx.Delete(&like).Error; err != nil {
				return fmt.Errorf("remove like: %w", err)
			}
			loved = false
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&models.ProductLike{ProductID: id, UserID: caller.UserID}).Error; err != nil {
				return fmt.Errorf("add like: %w", err)
			}
			loved = true
		default:
			return fmt.Errorf("find like: %w", err)
		}

		if err := tx.Model(&models.ProductLike{}).Where("product_id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("count likes: %w", err)
		}
		return tx.Model(&models.Product{}).Where("id = ?", id).UpdateColumn("love_count", count).Error
	})
	if err != nil {
		return false, 0, err
	}
	return loved, int(count), nil
}

func (s *ProductService) findActive(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).Where("id = ? AND is_active = ?", id, true).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return &product, nil
}

func (s *ProductService) load(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).
		Preload("Category").
		Preload("Reviews", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Reviews.User").
		First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errProductNotFound
		}
		return nil, fmt.Errorf("load product: %w", err)
	}
	return &product, nil
}
