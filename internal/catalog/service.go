package catalog

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/oakdonuts/pos-backend/pkg/db/models"
	pkgerrors "github.com/oakdonuts/pos-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service exposes catalog item management operations.
type Service interface {
	CreateItem(ctx context.Context, input ItemInput) (*ItemDTO, error)
	GetItem(ctx context.Context, id int64) (*ItemDTO, error)
	ListItems(ctx context.Context) ([]ItemDTO, error)
	ListItemsByCategory(ctx context.Context, category string) ([]ItemDTO, error)
	UpdateItem(ctx context.Context, id int64, input ItemInput) (*ItemDTO, error)
	DeleteItem(ctx context.Context, id int64) error
}

// ItemInput holds the payload to create or fully replace an item. Create and
// update share the same field constraints.
type ItemInput struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
	PriceCents  int64   `json:"price_cents" validate:"gte=0"`
	Category    string  `json:"category" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

type service struct {
	repo *Repository
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

// CreateItem validates the input and inserts the item; the returned DTO
// carries the freshly assigned id.
func (s *service) CreateItem(ctx context.Context, input ItemInput) (*ItemDTO, error) {
	item, err := buildItem(input)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.CreateItem(ctx, item)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert catalog item")
	}
	dto := toItemDTO(created)
	return &dto, nil
}

func (s *service) GetItem(ctx context.Context, id int64) (*ItemDTO, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load catalog item")
	}
	dto := toItemDTO(item)
	return &dto, nil
}

func (s *service) ListItems(ctx context.Context) ([]ItemDTO, error) {
	rows, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list catalog items")
	}
	return toItemDTOs(rows), nil
}

func (s *service) ListItemsByCategory(ctx context.Context, category string) ([]ItemDTO, error) {
	rows, err := s.repo.ListItemsByCategory(ctx, category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list catalog items by category")
	}
	return toItemDTOs(rows), nil
}

// UpdateItem replaces all mutable fields of the item; the id is immutable.
func (s *service) UpdateItem(ctx context.Context, id int64, input ItemInput) (*ItemDTO, error) {
	replacement, err := buildItem(input)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load catalog item")
	}

	existing.Name = replacement.Name
	existing.Description = replacement.Description
	existing.PriceCents = replacement.PriceCents
	existing.Category = replacement.Category

	updated, err := s.repo.UpdateItem(ctx, existing)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update catalog item")
	}
	dto := toItemDTO(updated)
	return &dto, nil
}

// DeleteItem removes the item. Existing orders keep their historical line
// snapshots; nothing outside the items table is touched.
func (s *service) DeleteItem(ctx context.Context, id int64) error {
	if err := s.repo.DeleteItem(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete catalog item")
	}
	return nil
}

func buildItem(input ItemInput) (*models.Item, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Category = strings.TrimSpace(input.Category)

	if err := validate.Struct(input); err != nil {
		return nil, formatValidationErrors(err)
	}

	return &models.Item{
		Name:        input.Name,
		Description: input.Description,
		PriceCents:  input.PriceCents,
		Category:    input.Category,
	}, nil
}

func formatValidationErrors(err error) *pkgerrors.Error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		details := map[string]string{}
		for _, fieldErr := range errs {
			details[fieldErr.Field()] = validationMessage(fieldErr)
		}
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
