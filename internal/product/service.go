package product

import (
	"context"
	"fmt"
	"strings"
	"time"

	"maison-be/internal/logger"
	"maison-be/internal/utils"

	"go.uber.org/zap"
)

// StockReader is the slice of the reconciliation engine this package
// needs: the derived product-wide availability.
type StockReader interface {
	Available(ctx context.Context, productID int64) (int, error)
	AvailableBatch(ctx context.Context, productIDs []int64) (map[int64]int, error)
}

type Service interface {
	GetList(ctx context.Context, opts ListOptions) ([]*ProductView, error)
	GetByID(ctx context.Context, id int64) (*ProductView, error)
	Create(ctx context.Context, input NewProductInput) (*ProductView, error)
	Update(ctx context.Context, id int64, input UpdateProductInput) (*ProductView, error)
	Delete(ctx context.Context, id int64) error
	Categories(ctx context.Context) ([]string, error)
	Bestsellers(ctx context.Context, limit int) ([]*ProductView, error)
	NewArrivals(ctx context.Context, limit int) ([]*ProductView, error)
}

type service struct {
	repo  Repository
	stock StockReader
}

func NewService(repo Repository, stock StockReader) Service {
	return &service{repo: repo, stock: stock}
}

func (s *service) GetList(ctx context.Context, opts ListOptions) ([]*ProductView, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetProductList"),
	)

	start := time.Now()

	if opts.Limit <= 0 {
		opts.Limit = 100
	} else if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Skip < 0 {
		opts.Skip = 0
	}

	products, err := s.repo.GetList(ctx, opts)
	if err != nil {
		log.Error("failed to fetch product list",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, err
	}

	views, err := s.projectAll(ctx, products)
	if err != nil {
		return nil, err
	}

	log.Info("get product list success",
		zap.Int("count", len(views)),
		zap.Duration("duration", time.Since(start)),
	)

	return views, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*ProductView, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	available, err := s.stock.Available(ctx, id)
	if err != nil {
		return nil, err
	}

	strategy := StrategyForRole(utils.GetUserRoleFromContext(ctx))
	return strategy.Project(p, available), nil
}

func (s *service) Create(ctx context.Context, input NewProductInput) (*ProductView, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidProduct)
	}
	if input.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrInvalidProduct)
	}
	if input.Stock < 0 {
		return nil, fmt.Errorf("%w: stock cannot be negative", ErrInvalidProduct)
	}
	if err := validateVariants(input.Variants); err != nil {
		return nil, err
	}

	p, err := s.repo.Create(ctx, input)
	if err != nil {
		return nil, err
	}

	available, err := s.stock.Available(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	return AdminView{}.Project(p, available), nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateProductInput) (*ProductView, error) {
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidProduct)
	}
	if input.Price != nil && *input.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrInvalidProduct)
	}
	if input.Stock != nil && *input.Stock < 0 {
		return nil, fmt.Errorf("%w: stock cannot be negative", ErrInvalidProduct)
	}
	if err := validateVariants(input.Variants); err != nil {
		return nil, err
	}

	p, err := s.repo.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}

	available, err := s.stock.Available(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	return AdminView{}.Project(p, available), nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}

func (s *service) Bestsellers(ctx context.Context, limit int) ([]*ProductView, error) {
	if limit <= 0 || limit > 20 {
		limit = 6
	}

	products, err := s.repo.Bestsellers(ctx, limit)
	if err != nil {
		return nil, err
	}

	return s.projectAll(ctx, products)
}

func (s *service) NewArrivals(ctx context.Context, limit int) ([]*ProductView, error) {
	if limit <= 0 || limit > 20 {
		limit = 6
	}

	products, err := s.repo.NewArrivals(ctx, limit)
	if err != nil {
		return nil, err
	}

	return s.projectAll(ctx, products)
}

// projectAll computes availability once per product (one grouped query
// for the whole page) and renders through the per-request strategy.
func (s *service) projectAll(ctx context.Context, products []*Product) ([]*ProductView, error) {
	ids := make([]int64, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}

	availability, err := s.stock.AvailableBatch(ctx, ids)
	if err != nil {
		return nil, err
	}

	strategy := StrategyForRole(utils.GetUserRoleFromContext(ctx))

	views := make([]*ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, strategy.Project(p, availability[p.ID]))
	}

	return views, nil
}

func validateVariants(input []VariantInput) error {
	for i, v := range input {
		if strings.TrimSpace(v.Size) == "" {
			return fmt.Errorf("%w: size is required at index %d", ErrInvalidVariant, i)
		}
		if v.Quantity < 0 {
			return fmt.Errorf("%w: quantity cannot be negative at index %d", ErrInvalidVariant, i)
		}
	}
	return nil
}
