package comment

import (
	"context"
	"fmt"
	"strings"

	"maison-be/internal/logger"
	"maison-be/internal/product"
	"maison-be/internal/utils"

	"go.uber.org/zap"
)

// ProductReader verifies the reviewed product exists. Satisfied by the
// product repository.
type ProductReader interface {
	GetByID(ctx context.Context, id int64) (*product.Product, error)
}

type Service interface {
	Create(ctx context.Context, productID int64, input NewCommentInput) (*Comment, error)
	ListForProduct(ctx context.Context, productID int64, limit, skip int) ([]*Comment, error)
	ListAll(ctx context.Context, limit, skip int) ([]*Comment, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo     Repository
	products ProductReader
}

func NewService(repo Repository, products ProductReader) Service {
	return &service{repo: repo, products: products}
}

func (s *service) Create(ctx context.Context, productID int64, input NewCommentInput) (*Comment, error) {
	log := logger.FromCtx(ctx)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrNotCommentOwner
	}

	if input.Rating < 1 || input.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidComment)
	}
	if strings.TrimSpace(input.Body) == "" {
		return nil, fmt.Errorf("%w: comment cannot be empty", ErrInvalidComment)
	}

	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}

	c := &Comment{
		ProductID: productID,
		UserID:    userID,
		Rating:    input.Rating,
		Body:      strings.TrimSpace(input.Body),
		UserEmail: utils.GetUserEmailFromContext(ctx),
	}
	if err := s.repo.Insert(ctx, c); err != nil {
		log.Error("failed to insert comment",
			zap.Int64("product_id", productID),
			zap.Error(err),
		)
		return nil, err
	}

	log.Info("comment created",
		zap.Int64("comment_id", c.ID),
		zap.Int64("product_id", productID),
		zap.Int("rating", c.Rating),
	)

	return c, nil
}

func (s *service) ListForProduct(ctx context.Context, productID int64, limit, skip int) ([]*Comment, error) {
	return s.repo.List(ctx, ListFilter{ProductID: &productID, Limit: limit, Skip: skip})
}

func (s *service) ListAll(ctx context.Context, limit, skip int) ([]*Comment, error) {
	return s.repo.ListWithProduct(ctx, limit, skip)
}

// Delete removes a comment. Owners delete their own; admins delete any.
func (s *service) Delete(ctx context.Context, id int64) error {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	userID, _ := utils.GetUserIDFromContext(ctx)
	if c.UserID != userID && !utils.IsAdmin(ctx) {
		return ErrNotCommentOwner
	}

	return s.repo.Delete(ctx, id)
}
