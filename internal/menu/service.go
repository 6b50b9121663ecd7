package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrStorageDisabled = errors.New("image storage is not configured")

type Storage interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

type Service struct {
	repo    Repository
	storage Storage
}

func NewService(repo Repository, storage Storage) *Service {
	return &Service{repo: repo, storage: storage}
}

// --------------------------------------------------
// Menu items
// --------------------------------------------------

func (s *Service) Create(ctx context.Context, item *MenuItem) error {
	if err := ValidateItem(item); err != nil {
		return err
	}
	return s.repo.Create(ctx, item)
}

func (s *Service) Get(ctx context.Context, id int64) (*MenuItem, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]MenuItem, error) {
	return s.repo.List(ctx)
}

// PublicMenu is what customers see when ordering.
func (s *Service) PublicMenu(ctx context.Context) ([]MenuItem, error) {
	return s.repo.ListAvailable(ctx)
}

func (s *Service) Update(ctx context.Context, item *MenuItem) error {
	if err := ValidateItem(item); err != nil {
		return err
	}
	return s.repo.Update(ctx, item)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// --------------------------------------------------
// Item photo upload
// --------------------------------------------------

func (s *Service) UploadImage(
	ctx context.Context,
	menuItemID int64,
	file multipart.File,
	header *multipart.FileHeader,
) (string, error) {

	if s.storage == nil {
		return "", ErrStorageDisabled
	}

	if _, err := s.repo.GetByID(ctx, menuItemID); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	key := fmt.Sprintf(
		"menu-items/%d/%s%s",
		menuItemID,
		uuid.New().String(),
		ext,
	)

	url, err := s.storage.Upload(ctx, key, file, header.Header.Get("Content-Type"))
	if err != nil {
		return "", err
	}

	if err := s.repo.SetImageURL(ctx, menuItemID, url); err != nil {
		return "", err
	}

	return url, nil
}

// --------------------------------------------------
// Recipes
// --------------------------------------------------

func (s *Service) ReplaceRecipe(ctx context.Context, menuItemID int64, lines []RecipeLine) error {
	for _, line := range lines {
		if line.IngredientID <= 0 {
			return errors.New("ingredient_id is required")
		}
		if line.Quantity <= 0 {
			return errors.New("quantity must be greater than zero")
		}
		if strings.TrimSpace(line.Unit) == "" {
			return errors.New("unit is required")
		}
	}

	return s.repo.ReplaceRecipe(ctx, menuItemID, lines)
}

func (s *Service) GetRecipe(ctx context.Context, menuItemID int64) ([]RecipeLine, error) {
	if _, err := s.repo.GetByID(ctx, menuItemID); err != nil {
		return nil, err
	}
	return s.repo.GetRecipe(ctx, menuItemID)
}
