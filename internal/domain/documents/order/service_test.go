package order

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uretimtrack/internal/core/apperror"
	"uretimtrack/internal/core/id"
	"uretimtrack/internal/domain"
	"uretimtrack/pkg/numerator"
)

// fakeRepo records created orders in memory.
type fakeRepo struct {
	created []*Order
}

func (f *fakeRepo) Create(ctx context.Context, o *Order) error {
	f.created = append(f.created, o)
	return nil
}

func (f *fakeRepo) CreateBatch(ctx context.Context, orders []*Order) error {
	f.created = append(f.created, orders...)
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, entityID id.ID) (*Order, error) {
	for _, o := range f.created {
		if o.ID == entityID {
			return o, nil
		}
	}
	return nil, apperror.NewNotFound("order", entityID)
}

func (f *fakeRepo) Update(ctx context.Context, o *Order) error { return nil }

func (f *fakeRepo) SetActive(ctx context.Context, entityID id.ID, active bool) error { return nil }

func (f *fakeRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Order], error) {
	return domain.ListResult[*Order]{Items: f.created}, nil
}

func (f *fakeRepo) Exists(ctx context.Context, entityID id.ID) (bool, error) { return false, nil }

// passthroughTxManager runs the callback without a real transaction.
type passthroughTxManager struct{}

func (passthroughTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type allowAllProducts struct{}

func (allowAllProducts) ExistsByCode(ctx context.Context, code string) (bool, error) {
	return true, nil
}

type fakeNumbers struct {
	next  int64
	calls int
}

func (f *fakeNumbers) GetNextNumber(ctx context.Context, cfg numerator.Config, opts *numerator.Options, period time.Time) (string, error) {
	f.next++
	f.calls++
	return fmt.Sprintf("%s-%s-%05d", cfg.Prefix, period.Format("2006"), f.next), nil
}

func testDate() time.Time {
	return time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC)
}

func TestCreateGeneratesDocumentNoWhenEmpty(t *testing.T) {
	repo := &fakeRepo{}
	numbers := &fakeNumbers{}
	svc := NewService(repo, allowAllProducts{}, numbers, passthroughTxManager{})

	o := NewOrder(testDate(), "", "Acme", "dsk-001", 100)
	require.NoError(t, svc.Create(context.Background(), o))

	assert.Equal(t, "ORD-2026-00001", o.DocumentNo)
	require.Len(t, repo.created, 1)
	assert.Equal(t, o, repo.created[0])
}

func TestCreateKeepsProvidedDocumentNo(t *testing.T) {
	repo := &fakeRepo{}
	numbers := &fakeNumbers{}
	svc := NewService(repo, allowAllProducts{}, numbers, passthroughTxManager{})

	o := NewOrder(testDate(), "CUST-42", "Acme", "dsk-001", 100)
	require.NoError(t, svc.Create(context.Background(), o))

	assert.Equal(t, "CUST-42", o.DocumentNo)
	assert.Zero(t, numbers.calls)
}

func TestCreateWithoutGeneratorRequiresDocumentNo(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, allowAllProducts{}, nil, passthroughTxManager{})

	o := NewOrder(testDate(), "", "Acme", "dsk-001", 100)
	err := svc.Create(context.Background(), o)

	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestCreateBulkNumbersOnlyMissingRows(t *testing.T) {
	repo := &fakeRepo{}
	numbers := &fakeNumbers{}
	svc := NewService(repo, allowAllProducts{}, numbers, passthroughTxManager{})

	orders := []*Order{
		NewOrder(testDate(), "", "Acme", "dsk-001", 10),
		NewOrder(testDate(), "CUST-7", "Acme", "kmp-001", 20),
		NewOrder(testDate(), "", "Beta", "pyr-001", 30),
	}
	require.NoError(t, svc.CreateBulk(context.Background(), orders))

	assert.Equal(t, "ORD-2026-00001", orders[0].DocumentNo)
	assert.Equal(t, "CUST-7", orders[1].DocumentNo)
	assert.Equal(t, "ORD-2026-00002", orders[2].DocumentNo)
	assert.Equal(t, 2, numbers.calls)
	assert.Len(t, repo.created, 3)
}
