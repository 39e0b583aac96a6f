package comment

import (
	"context"
	"testing"

	"maison-be/internal/product"
	"maison-be/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Insert(ctx context.Context, c *Comment) error {
	args := m.Called(ctx, c)
	if args.Error(0) == nil {
		c.ID = 7
	}
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Comment), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, filter ListFilter) ([]*Comment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Comment), args.Error(1)
}

func (m *MockRepository) ListWithProduct(ctx context.Context, limit, skip int) ([]*Comment, error) {
	args := m.Called(ctx, limit, skip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Comment), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockProducts struct {
	mock.Mock
}

func (m *MockProducts) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func buyerCtx() context.Context {
	return utils.SetUserContext(context.Background(), 3, "anna@example.com", utils.RoleCustomer)
}

func adminCtx() context.Context {
	return utils.SetUserContext(context.Background(), 1, "admin@example.com", utils.RoleAdmin)
}

// --- Tests ---

func TestService_Create(t *testing.T) {
	t.Run("RejectsRatingBelowRange", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockProducts))

		_, err := svc.Create(buyerCtx(), 1, NewCommentInput{Rating: 0, Body: "nice"})
		assert.ErrorIs(t, err, ErrInvalidComment)
	})

	t.Run("RejectsRatingAboveRange", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockProducts))

		_, err := svc.Create(buyerCtx(), 1, NewCommentInput{Rating: 6, Body: "nice"})
		assert.ErrorIs(t, err, ErrInvalidComment)
	})

	t.Run("RejectsEmptyBody", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockProducts))

		_, err := svc.Create(buyerCtx(), 1, NewCommentInput{Rating: 4, Body: "   "})
		assert.ErrorIs(t, err, ErrInvalidComment)
	})

	t.Run("UnknownProduct", func(t *testing.T) {
		products := new(MockProducts)
		svc := NewService(new(MockRepository), products)

		products.On("GetByID", mock.Anything, int64(99)).Return(nil, product.ErrProductNotFound)

		_, err := svc.Create(buyerCtx(), 99, NewCommentInput{Rating: 4, Body: "nice"})
		assert.ErrorIs(t, err, product.ErrProductNotFound)
	})

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		products := new(MockProducts)
		svc := NewService(repo, products)

		products.On("GetByID", mock.Anything, int64(1)).Return(&product.Product{ID: 1}, nil)
		repo.On("Insert", mock.Anything, mock.MatchedBy(func(c *Comment) bool {
			return c.ProductID == 1 && c.UserID == 3 && c.Rating == 4 && c.Body == "Great linen."
		})).Return(nil)

		c, err := svc.Create(buyerCtx(), 1, NewCommentInput{Rating: 4, Body: "  Great linen.  "})
		require.NoError(t, err)
		assert.Equal(t, int64(7), c.ID)
		assert.Equal(t, "anna@example.com", c.UserEmail)
	})
}

func TestService_Delete(t *testing.T) {
	existing := &Comment{ID: 7, ProductID: 1, UserID: 3}

	t.Run("OwnerCanDelete", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockProducts))

		repo.On("GetByID", mock.Anything, int64(7)).Return(existing, nil)
		repo.On("Delete", mock.Anything, int64(7)).Return(nil)

		assert.NoError(t, svc.Delete(buyerCtx(), 7))
	})

	t.Run("StrangerForbidden", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockProducts))

		repo.On("GetByID", mock.Anything, int64(7)).Return(existing, nil)

		stranger := utils.SetUserContext(context.Background(), 42, "x@example.com", utils.RoleCustomer)
		assert.ErrorIs(t, svc.Delete(stranger, 7), ErrNotCommentOwner)
		repo.AssertNotCalled(t, "Delete", mock.Anything, int64(7))
	})

	t.Run("AdminCanDeleteAny", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockProducts))

		repo.On("GetByID", mock.Anything, int64(7)).Return(existing, nil)
		repo.On("Delete", mock.Anything, int64(7)).Return(nil)

		assert.NoError(t, svc.Delete(adminCtx(), 7))
	})

	t.Run("Missing", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockProducts))

		repo.On("GetByID", mock.Anything, int64(99)).Return(nil, ErrCommentNotFound)

		assert.ErrorIs(t, svc.Delete(buyerCtx(), 99), ErrCommentNotFound)
	})
}
