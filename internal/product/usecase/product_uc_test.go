package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/campus-market/listing-service/internal/platform/logger"
	"github.com/campus-market/listing-service/internal/product/domain"
)

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}
func (m *MockProductRepository) Delete(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
func (m *MockProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
func (m *MockProductRepository) FindByFilter(ctx context.Context, filter domain.Filter) ([]*domain.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Product), args.Error(1)
}
func (m *MockProductRepository) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockCache struct{ mock.Mock }

func (m *MockCache) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
func (m *MockCache) SetProduct(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}
func (m *MockCache) DeleteProduct(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) ProductCreated(ctx context.Context, event ProductEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
func (m *MockPublisher) ProductDeleted(ctx context.Context, event ProductEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockEmailSender struct{ mock.Mock }

func (m *MockEmailSender) SendEmail(to []string, subject, body string) error {
	args := m.Called(to, subject, body)
	return args.Error(0)
}

func validInput() CreateProductInput {
	return CreateProductInput{
		Title:       "Calculus Textbook",
		Description: "Used, good condition",
		Price:       45,
		Seller:      "Alex",
		Contact:     "alex@x.edu",
	}
}

func TestProductUsecase_CreateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Valid", func(t *testing.T) {
		repo := new(MockProductRepository)
		cache := new(MockCache)
		pub := new(MockPublisher)

		repo.On("Create", ctx, mock.AnythingOfType("*domain.Product")).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Product).ID = "abc123"
		}).Return(nil).Once()
		cache.On("SetProduct", ctx, mock.AnythingOfType("*domain.Product")).Return(nil).Once()
		pub.On("ProductCreated", ctx, ProductEvent{ID: "abc123", Title: "Calculus Textbook"}).Return(nil).Once()

		uc := NewProductUsecase(repo, cache, pub, nil, logger.NewNop())
		input := validInput()
		product, err := uc.CreateProduct(ctx, input)

		require.NoError(t, err)
		require.NotNil(t, product)
		assert.Equal(t, "abc123", product.ID)
		assert.Equal(t, input.Title, product.Title)
		assert.Equal(t, input.Description, product.Description)
		assert.Equal(t, input.Price, product.Price)
		assert.Equal(t, input.Seller, product.Seller)
		assert.Equal(t, input.Contact, product.Contact)

		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
		pub.AssertExpectations(t)
	})

	t.Run("MissingFieldWritesNothing", func(t *testing.T) {
		cases := map[string]func(*CreateProductInput){
			"Title":       func(in *CreateProductInput) { in.Title = "" },
			"Description": func(in *CreateProductInput) { in.Description = "" },
			"Seller":      func(in *CreateProductInput) { in.Seller = "" },
			"Contact":     func(in *CreateProductInput) { in.Contact = "" },
		}
		for name, clear := range cases {
			t.Run(name, func(t *testing.T) {
				repo := new(MockProductRepository)
				uc := NewProductUsecase(repo, nil, nil, nil, logger.NewNop())

				input := validInput()
				clear(&input)
				product, err := uc.CreateProduct(ctx, input)

				assert.ErrorIs(t, err, domain.ErrInvalidProductData)
				assert.Nil(t, product)
				repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("NegativePriceRejected", func(t *testing.T) {
		repo := new(MockProductRepository)
		uc := NewProductUsecase(repo, nil, nil, nil, logger.NewNop())

		input := validInput()
		input.Price = -5
		_, err := uc.CreateProduct(ctx, input)

		assert.ErrorIs(t, err, domain.ErrInvalidProductData)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("SideEffectFailuresDoNotFailCreate", func(t *testing.T) {
		repo := new(MockProductRepository)
		cache := new(MockCache)
		pub := new(MockPublisher)

		repo.On("Create", ctx, mock.AnythingOfType("*domain.Product")).Return(nil).Once()
		cache.On("SetProduct", ctx, mock.Anything).Return(errors.New("redis down")).Once()
		pub.On("ProductCreated", ctx, mock.AnythingOfType("usecase.ProductEvent")).Return(errors.New("nats down")).Once()

		uc := NewProductUsecase(repo, cache, pub, nil, logger.NewNop())
		_, err := uc.CreateProduct(ctx, validInput())

		assert.NoError(t, err)
	})
}

func TestProductUsecase_ListProducts(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProductRepository)
	uc := NewProductUsecase(repo, nil, nil, nil, logger.NewNop())

	filter := domain.Filter{MaxPrice: domain.PriceBound(50), Search: "calc", Sort: domain.SortAsc}
	expected := []*domain.Product{{ID: "1", Title: "Calculus Textbook", Price: 45}}
	repo.On("FindByFilter", ctx, filter).Return(expected, nil).Once()

	products, err := uc.ListProducts(ctx, filter)

	require.NoError(t, err)
	assert.Equal(t, expected, products)
	repo.AssertExpectations(t)
}

func TestProductUsecase_GetProduct(t *testing.T) {
	ctx := context.Background()
	product := &domain.Product{ID: "abc123", Title: "Desk Lamp", Price: 15}

	t.Run("CacheHitSkipsRepo", func(t *testing.T) {
		repo := new(MockProductRepository)
		cache := new(MockCache)
		cache.On("GetProduct", ctx, "abc123").Return(product, nil).Once()

		uc := NewProductUsecase(repo, cache, nil, nil, logger.NewNop())
		got, err := uc.GetProduct(ctx, "abc123")

		require.NoError(t, err)
		assert.Equal(t, product, got)
		repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("CacheMissFallsThrough", func(t *testing.T) {
		repo := new(MockProductRepository)
		cache := new(MockCache)
		cache.On("GetProduct", ctx, "abc123").Return(nil, nil).Once()
		repo.On("FindByID", ctx, "abc123").Return(product, nil).Once()
		cache.On("SetProduct", ctx, product).Return(nil).Once()

		uc := NewProductUsecase(repo, cache, nil, nil, logger.NewNop())
		got, err := uc.GetProduct(ctx, "abc123")

		require.NoError(t, err)
		assert.Equal(t, product, got)
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockProductRepository)
		repo.On("FindByID", ctx, "missing").Return(nil, domain.ErrProductNotFound).Once()

		uc := NewProductUsecase(repo, nil, nil, nil, logger.NewNop())
		_, err := uc.GetProduct(ctx, "missing")

		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})
}

func TestProductUsecase_DeleteProduct(t *testing.T) {
	ctx := context.Background()
	product := &domain.Product{ID: "abc123", Title: "Mini Fridge", Seller: "Sam", Contact: "sam@x.edu", Price: 45}

	t.Run("ReturnsPriorStateAndNotifies", func(t *testing.T) {
		repo := new(MockProductRepository)
		cache := new(MockCache)
		pub := new(MockPublisher)
		mailer := new(MockEmailSender)

		repo.On("Delete", ctx, "abc123").Return(product, nil).Once()
		cache.On("DeleteProduct", ctx, "abc123").Return(nil).Once()
		pub.On("ProductDeleted", ctx, ProductEvent{ID: "abc123", Title: "Mini Fridge"}).Return(nil).Once()
		mailer.On("SendEmail", []string{"sam@x.edu"}, mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(nil).Once()

		uc := NewProductUsecase(repo, cache, pub, mailer, logger.NewNop())
		got, err := uc.DeleteProduct(ctx, "abc123")

		require.NoError(t, err)
		assert.Equal(t, product, got)
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
		pub.AssertExpectations(t)
		mailer.AssertExpectations(t)
	})

	t.Run("UnknownIDChangesNothing", func(t *testing.T) {
		repo := new(MockProductRepository)
		cache := new(MockCache)
		pub := new(MockPublisher)

		repo.On("Delete", ctx, "missing").Return(nil, domain.ErrProductNotFound).Once()

		uc := NewProductUsecase(repo, cache, pub, nil, logger.NewNop())
		got, err := uc.DeleteProduct(ctx, "missing")

		assert.ErrorIs(t, err, domain.ErrProductNotFound)
		assert.Nil(t, got)
		cache.AssertNotCalled(t, "DeleteProduct", mock.Anything, mock.Anything)
		pub.AssertNotCalled(t, "ProductDeleted", mock.Anything, mock.Anything)
	})

	t.Run("EmailFailureDoesNotFailDelete", func(t *testing.T) {
		repo := new(MockProductRepository)
		mailer := new(MockEmailSender)

		repo.On("Delete", ctx, "abc123").Return(product, nil).Once()
		mailer.On("SendEmail", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down")).Once()

		uc := NewProductUsecase(repo, nil, nil, mailer, logger.NewNop())
		_, err := uc.DeleteProduct(ctx, "abc123")

		assert.NoError(t, err)
		mailer.AssertExpectations(t)
	})
}

func TestPhotoUsecase_UploadPhoto(t *testing.T) {
	ctx := context.Background()

	t.Run("EmptyFileRejected", func(t *testing.T) {
		uc := NewPhotoUsecase(stubStorage{}, logger.NewNop())
		_, err := uc.UploadPhoto(ctx, "photo.jpg", nil)
		assert.ErrorIs(t, err, ErrEmptyPhoto)
	})

	t.Run("StorageFailureIsFatal", func(t *testing.T) {
		uc := NewPhotoUsecase(stubStorage{err: errors.New("disk full")}, logger.NewNop())
		_, err := uc.UploadPhoto(ctx, "photo.jpg", []byte("data"))
		assert.Error(t, err)
	})

	t.Run("ReturnsReference", func(t *testing.T) {
		uc := NewPhotoUsecase(stubStorage{ref: "/uploads/123-photo.jpg"}, logger.NewNop())
		ref, err := uc.UploadPhoto(ctx, "photo.jpg", []byte("data"))
		require.NoError(t, err)
		assert.Equal(t, "/uploads/123-photo.jpg", ref)
	})
}

type stubStorage struct {
	ref string
	err error
}

func (s stubStorage) Upload(ctx context.Context, fileName string, data []byte) (string, error) {
	return s.ref, s.err
}
