package service

import (
	"context"
	"fmt"

	"newsportal/internal/common"
	"newsportal/internal/domain/model"
	"newsportal/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type NewsService struct {
	newsRepo repository.NewsRepository
}

func NewNewsService(newsRepo repository.NewsRepository) *NewsService {
	return &NewsService{newsRepo: newsRepo}
}

type CreateNewsRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category"`
}

// UpdateNewsRequest is a partial patch; nil fields are left untouched.
// Title and description cannot be patched to empty strings.
type UpdateNewsRequest struct {
	Title       *string `json:"title" validate:"omitnil,required"`
	Description *string `json:"description" validate:"omitnil,required"`
	Category    *string `json:"category"`
}

// assertOwner is the ownership re-check gating every mutation. The caller
// identity always comes from the verified token, never from the payload.
func assertOwner(news *model.News, callerID string) error {
	if news == nil {
		return common.ErrNotFound
	}
	if news.AuthorID != callerID {
		return fmt.Errorf("you can only modify your own news: %w", common.ErrForbidden)
	}
	return nil
}

func (s *NewsService) Create(ctx context.Context, authorID string, req CreateNewsRequest, imageRef *string) (*model.News, error) {
	if authorID == "" {
		return nil, common.ErrUnauthorized
	}
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), common.ErrValidation)
	}

	news := &model.News{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Slug:        slug.Make(req.Title),
		Description: req.Description,
		Image:       imageRef,
		Category:    req.Category,
		AuthorID:    authorID,
	}
	if err := s.newsRepo.Create(ctx, news); err != nil {
		return nil, fmt.Errorf("failed to create news: %w", err)
	}

	// Re-read for the author-populated echo
	return s.newsRepo.FindByID(ctx, news.ID)
}

func (s *NewsService) ListAll(ctx context.Context) ([]model.News, error) {
	return s.newsRepo.ListAll(ctx)
}

func (s *NewsService) GetByID(ctx context.Context, id string) (*model.News, error) {
	return s.newsRepo.FindByID(ctx, id)
}

func (s *NewsService) ListByCategory(ctx context.Context, category string) ([]model.News, error) {
	return s.newsRepo.ListByCategory(ctx, category)
}

func (s *NewsService) ListLatest(ctx context.Context, limit int) ([]model.News, error) {
	return s.newsRepo.ListLatest(ctx, limit)
}

func (s *NewsService) ListMine(ctx context.Context, authorID string) ([]model.News, error) {
	if authorID == "" {
		return nil, common.ErrUnauthorized
	}
	return s.newsRepo.ListByAuthor(ctx, authorID)
}

func (s *NewsService) Update(ctx context.Context, authorID, id string, req UpdateNewsRequest, imageRef *string) (*model.News, error) {
	if authorID == "" {
		return nil, common.ErrUnauthorized
	}
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), common.ErrValidation)
	}

	news, err := s.newsRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := assertOwner(news, authorID); err != nil {
		return nil, err
	}

	if req.Title != nil {
		news.Title = *req.Title
		news.Slug = slug.Make(*req.Title)
	}
	if req.Description != nil {
		news.Description = *req.Description
	}
	if req.Category != nil {
		news.Category = *req.Category
	}
	if imageRef != nil {
		news.Image = imageRef
	}

	if err := s.newsRepo.Update(ctx, news); err != nil {
		return nil, fmt.Errorf("failed to update news: %w", err)
	}
	return s.newsRepo.FindByID(ctx, id)
}

func (s *NewsService) Delete(ctx context.Context, authorID, id string) error {
	if authorID == "" {
		return common.ErrUnauthorized
	}

	news, err := s.newsRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := assertOwner(news, authorID); err != nil {
		return err
	}

	if err := s.newsRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete news: %w", err)
	}
	return nil
}
