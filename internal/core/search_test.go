package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSearchService_Search_Success(t *testing.T) {
	db := &mockDB{}
	svc := NewSearchService(db)
	ctx := context.Background()

	// Every resource query returns empty except the one matched per call order.
	db.On("Query", mock.Anything, mock.AnythingOfType("string"), mock.Anything).
		Return(newMockRows(func(dest ...any) error {
			*(dest[0].(*string)) = "dcim.site"
			*(dest[1].(*int64)) = 12
			*(dest[2].(*string)) = "AMS 1"
			*(dest[3].(*string)) = "/api/dcim/sites/12/"
			return nil
		}), nil).Once()
	for i := 0; i < 7; i++ {
		db.On("Query", mock.Anything, mock.AnythingOfType("string"), mock.Anything).
			Return(newEmptyMockRows(), nil).Once()
	}

	results, err := svc.Search(ctx, "ams", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "dcim.site", results[0].Type)
	assert.Equal(t, int64(12), results[0].ID)
	assert.Equal(t, "AMS 1", results[0].Label)
	assert.Equal(t, "/api/dcim/sites/12/", results[0].URL)
	db.AssertExpectations(t)
}

func TestSearchService_Search_NoMatches(t *testing.T) {
	db := &mockDB{}
	svc := NewSearchService(db)
	ctx := context.Background()

	db.On("Query", mock.Anything, mock.AnythingOfType("string"), mock.Anything).
		Return(newEmptyMockRows(), nil)

	results, err := svc.Search(ctx, "zzz", 10)
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
	db.AssertExpectations(t)
}

func TestSearchService_Search_QueryError(t *testing.T) {
	db := &mockDB{}
	svc := NewSearchService(db)
	ctx := context.Background()

	db.On("Query", mock.Anything, mock.AnythingOfType("string"), mock.Anything).
		Return(nil, errors.New("connection lost"))

	results, err := svc.Search(ctx, "ams", 10)
	require.Error(t, err)
	assert.Nil(t, results)
	assert.Contains(t, err.Error(), "search")
	db.AssertExpectations(t)
}

func TestSearchService_Search_DefaultLimit(t *testing.T) {
	db := &mockDB{}
	svc := NewSearchService(db)
	ctx := context.Background()

	db.On("Query", mock.Anything, mock.AnythingOfType("string"), mock.Anything).
		Return(newEmptyMockRows(), nil)

	_, err := svc.Search(ctx, "ams", 0)
	require.NoError(t, err)
	db.AssertExpectations(t)
}
