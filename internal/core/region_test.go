package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/torvik/inventory/internal/model"
)

func TestNewRegionService(t *testing.T) {
	db := &mockDB{}
	svc := NewRegionService(db)

	require.NotNil(t, svc)
	assert.Equal(t, db, svc.db)
}

// ---------- Create ----------

func TestRegionService_Create_Success(t *testing.T) {
	db := &mockDB{}
	svc := NewRegionService(db)
	ctx := context.Background()

	region := &model.Region{Name: "Europe", Slug: "europe"}

	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(idRow(7))

	err := svc.Create(ctx, region)
	require.NoError(t, err)
	assert.Equal(t, int64(7), region.ID)
	db.AssertExpectations(t)
}

func TestRegionService_Create_DBError(t *testing.T) {
	db := &mockDB{}
	svc := NewRegionService(db)
	ctx := context.Background()

	region := &model.Region{Name: "Europe", Slug: "europe"}

	row := &mockRow{scanFunc: func(dest ...any) error {
		return errors.New("unique violation")
	}}
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(row)

	err := svc.Create(ctx, region)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create region")
	db.AssertExpectations(t)
}

// ---------- GetByID ----------

func TestRegionService_GetByID_Success(t *testing.T) {
	db := &mockDB{}
	svc := NewRegionService(db)
	ctx := context.Background()

	now := time.Now().Truncate(time.Microsecond)
	parentID := int64(1)
	parentName, parentSlug := "Europe", "europe"

	row := &mockRow{scanFunc: func(dest ...any) error {
		*(dest[0].(*int64)) = 2
		*(dest[1].(*string)) = "Netherlands"
		*(dest[2].(*string)) = "netherlands"
		*(dest[3].(**int64)) = &parentID
		*(dest[4].(**string)) = &parentName
		*(dest[5].(**string)) = &parentSlug
		*(dest[6].(*time.Time)) = now
		*(dest[7].(*time.Time)) = now
		return nil
	}}
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(row)

	result, err := svc.GetByID(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, int64(2), result.ID)
	assert.Equal(t, "Netherlands", result.Name)
	require.NotNil(t, result.Parent)
	assert.Equal(t, int64(1), result.Parent.ID)
	assert.Equal(t, "europe", result.Parent.Slug)
	assert.Equal(t, now, result.CreatedAt)
	db.AssertExpectations(t)
}

func TestRegionService_GetByID_NotFound(t *testing.T) {
	db := &mockDB{}
	svc := NewRegionService(db)
	ctx := context.Background()

	row := &mockRow{scanFunc: func(dest ...any) error {
		return pgx.ErrNoRows
	}}
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(row)

	result, err := svc.GetByID(ctx, 99)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrNotFound)
	db.AssertExpectations(t)
}

// ---------- List ----------

func TestRegionService_List_Success(t *testing.T) {
	db := &mockDB{}
	svc := NewRegionService(db)
	ctx := context.Background()

	now := time.Now().Truncate(time.Microsecond)

	rows := newMockRows(
		func(dest ...any) error {
			*(dest[0].(*int64)) = 1
			*(dest[1].(*string)) = "Asia"
			*(dest[2].(*string)) = "asia"
			*(dest[6].(*time.Time)) = now
			*(dest[7].(*time.Time)) = now
			return nil
		},
		func(dest ...any) error {
			*(dest[0].(*int64)) = 2
			*(dest[1].(*string)) = "Europe"
			*(dest[2].(*string)) = "europe"
			*(dest[6].(*time.Time)) = now
			*(dest[7].(*time.Time)) = now
			return nil
		},
	)
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(countRow(2))
	db.On("Query", ctx, mock.AnythingOfType("string"), mock.Anything).Return(rows, nil)

	result, total, err := svc.List(ctx, RegionFilter{}, 50, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, result, 2)
	assert.Equal(t, "Asia", result[0].Name)
	assert.Equal(t, "Europe", result[1].Name)
	assert.Nil(t, result[0].Parent)
	db.AssertExpectations(t)
}

func TestRegionService_List_Empty(t *testing.T) {
	db := &mockDB{}
	svc := NewRegionService(db)
	ctx := context.Background()

	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(countRow(0))
	db.On("Query", ctx, mock.AnythingOfType("string"), mock.Anything).Return(newEmptyMockRows(), nil)

	result, total, err := svc.List(ctx, RegionFilter{}, 50, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NotNil(t, result)
	assert.Empty(t, result)
	db.AssertExpectations(t)
}

func TestRegionService_List_QueryError(t *testing.T) {
	db := &mockDB{}
	svc := NewRegionService(db)
	ctx := context.Background()

	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(countRow(5))
	db.On("Query", ctx, mock.AnythingOfType("string"), mock.Anything).Return(nil, errors.New("connection lost"))

	result, _, err := svc.List(ctx, RegionFilter{}, 50, 0)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "list regions")
	db.AssertExpectations(t)
}

func TestRegionService_List_SearchFilterArgs(t *testing.T) {
	db := &mockDB{}
	svc := NewRegionService(db)
	ctx := context.Background()

	db.On("QueryRow", ctx, mock.AnythingOfType("string"), []any{"%eur%"}).Return(countRow(1))
	db.On("Query", ctx, mock.AnythingOfType("string"), []any{"%eur%", 50, 0}).Return(newEmptyMockRows(), nil)

	_, _, err := svc.List(ctx, RegionFilter{Search: "eur"}, 50, 0)
	require.NoError(t, err)
	db.AssertExpectations(t)
}

// ---------- Update ----------

func TestRegionService_Update_Success(t *testing.T) {
	db := &mockDB{}
	svc := NewRegionService(db)
	ctx := context.Background()

	region := &model.Region{ID: 2, Name: "Europe", Slug: "europe"}

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).Return(execTag(1), nil)

	err := svc.Update(ctx, region)
	require.NoError(t, err)
	db.AssertExpectations(t)
}

func TestRegionService_Update_NotFound(t *testing.T) {
	db := &mockDB{}
	svc := NewRegionService(db)
	ctx := context.Background()

	region := &model.Region{ID: 99, Name: "Europe", Slug: "europe"}

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).Return(execTag(0), nil)

	err := svc.Update(ctx, region)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	db.AssertExpectations(t)
}

// ---------- Delete ----------

func TestRegionService_Delete_Success(t *testing.T) {
	db := &mockDB{}
	svc := NewRegionService(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).Return(execTag(1), nil)

	err := svc.Delete(ctx, 2)
	require.NoError(t, err)
	db.AssertExpectations(t)
}

func TestRegionService_Delete_DBError(t *testing.T) {
	db := &mockDB{}
	svc := NewRegionService(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).Return(pgconn.CommandTag{}, errors.New("foreign key violation"))

	err := svc.Delete(ctx, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delete region")
	db.AssertExpectations(t)
}

func TestRegionService_Delete_NotFound(t *testing.T) {
	db := &mockDB{}
	svc := NewRegionService(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).Return(execTag(0), nil)

	err := svc.Delete(ctx, 99)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	db.AssertExpectations(t)
}
