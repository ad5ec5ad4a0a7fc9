package core

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/torvik/inventory/internal/model"
)

func siteRow(id int64, name, slug string) func(dest ...any) error {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	return func(dest ...any) error {
		*(dest[0].(*int64)) = id
		*(dest[1].(*string)) = name
		*(dest[2].(*string)) = slug
		*(dest[9].(*string)) = "Equinix AM7"
		*(dest[17].(*json.RawMessage)) = json.RawMessage(`{}`)
		*(dest[23].(*time.Time)) = now
		*(dest[24].(*time.Time)) = now
		return nil
	}
}

// ---------- Create ----------

func TestSiteService_Create_Success(t *testing.T) {
	db := &mockDB{}
	svc := NewSiteService(db)
	ctx := context.Background()

	site := &model.Site{Name: "AMS 1", Slug: "ams-1", Facility: "Equinix AM7"}

	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(idRow(12))

	err := svc.Create(ctx, site)
	require.NoError(t, err)
	assert.Equal(t, int64(12), site.ID)
	db.AssertExpectations(t)
}

func TestSiteService_Create_DBError(t *testing.T) {
	db := &mockDB{}
	svc := NewSiteService(db)
	ctx := context.Background()

	site := &model.Site{Name: "AMS 1", Slug: "ams-1"}

	row := &mockRow{scanFunc: func(dest ...any) error {
		return errors.New("unique violation")
	}}
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(row)

	err := svc.Create(ctx, site)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create site")
	db.AssertExpectations(t)
}

// ---------- GetByID ----------

func TestSiteService_GetByID_Success(t *testing.T) {
	db := &mockDB{}
	svc := NewSiteService(db)
	ctx := context.Background()

	now := time.Now().Truncate(time.Microsecond)
	regionID := int64(3)
	regionName, regionSlug := "Europe", "europe"
	asn := int64(65001)

	row := &mockRow{scanFunc: func(dest ...any) error {
		*(dest[0].(*int64)) = 12
		*(dest[1].(*string)) = "AMS 1"
		*(dest[2].(*string)) = "ams-1"
		*(dest[3].(**int64)) = &regionID
		*(dest[4].(**string)) = &regionName
		*(dest[5].(**string)) = &regionSlug
		*(dest[9].(*string)) = "Equinix AM7"
		*(dest[10].(**int64)) = &asn
		*(dest[17].(*json.RawMessage)) = json.RawMessage(`{"cage":"B12"}`)
		*(dest[18].(*int)) = 4
		*(dest[19].(*int)) = 9
		*(dest[20].(*int)) = 2
		*(dest[21].(*int)) = 31
		*(dest[22].(*int)) = 3
		*(dest[23].(*time.Time)) = now
		*(dest[24].(*time.Time)) = now
		return nil
	}}
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(row)

	result, err := svc.GetByID(ctx, 12)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, int64(12), result.ID)
	assert.Equal(t, "AMS 1", result.Name)
	require.NotNil(t, result.Region)
	assert.Equal(t, "europe", result.Region.Slug)
	assert.Nil(t, result.Tenant)
	require.NotNil(t, result.ASN)
	assert.Equal(t, int64(65001), *result.ASN)
	assert.Equal(t, 4, result.CountPrefixes)
	assert.Equal(t, 9, result.CountVLANs)
	assert.Equal(t, 2, result.CountRacks)
	assert.Equal(t, 31, result.CountDevices)
	assert.Equal(t, 3, result.CountCircuits)
	assert.JSONEq(t, `{"cage":"B12"}`, string(result.CustomFields))
	db.AssertExpectations(t)
}

func TestSiteService_GetByID_NotFound(t *testing.T) {
	db := &mockDB{}
	svc := NewSiteService(db)
	ctx := context.Background()

	row := &mockRow{scanFunc: func(dest ...any) error {
		return pgx.ErrNoRows
	}}
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(row)

	result, err := svc.GetByID(ctx, 404)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrNotFound)
	db.AssertExpectations(t)
}

// ---------- List ----------

func TestSiteService_List_Success(t *testing.T) {
	db := &mockDB{}
	svc := NewSiteService(db)
	ctx := context.Background()

	rows := newMockRows(
		siteRow(1, "AMS 1", "ams-1"),
		siteRow(2, "FRA 1", "fra-1"),
	)
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(countRow(2))
	db.On("Query", ctx, mock.AnythingOfType("string"), mock.Anything).Return(rows, nil)

	result, total, err := svc.List(ctx, SiteFilter{}, 50, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, result, 2)
	assert.Equal(t, "AMS 1", result[0].Name)
	assert.Equal(t, "FRA 1", result[1].Name)
	db.AssertExpectations(t)
}

func TestSiteService_List_RegionFilterArgs(t *testing.T) {
	db := &mockDB{}
	svc := NewSiteService(db)
	ctx := context.Background()

	db.On("QueryRow", ctx, mock.AnythingOfType("string"), []any{"europe"}).Return(countRow(0))
	db.On("Query", ctx, mock.AnythingOfType("string"), []any{"europe", 50, 0}).Return(newEmptyMockRows(), nil)

	result, total, err := svc.List(ctx, SiteFilter{RegionSlug: "europe"}, 50, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, result)
	db.AssertExpectations(t)
}

func TestSiteService_List_CountError(t *testing.T) {
	db := &mockDB{}
	svc := NewSiteService(db)
	ctx := context.Background()

	row := &mockRow{scanFunc: func(dest ...any) error {
		return errors.New("connection lost")
	}}
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(row)

	result, _, err := svc.List(ctx, SiteFilter{}, 50, 0)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "count sites")
	db.AssertExpectations(t)
}

// ---------- Update ----------

func TestSiteService_Update_Success(t *testing.T) {
	db := &mockDB{}
	svc := NewSiteService(db)
	ctx := context.Background()

	site := &model.Site{ID: 12, Name: "AMS 1", Slug: "ams-1"}

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).Return(execTag(1), nil)

	err := svc.Update(ctx, site)
	require.NoError(t, err)
	db.AssertExpectations(t)
}

func TestSiteService_Update_NotFound(t *testing.T) {
	db := &mockDB{}
	svc := NewSiteService(db)
	ctx := context.Background()

	site := &model.Site{ID: 404, Name: "AMS 1", Slug: "ams-1"}

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).Return(execTag(0), nil)

	err := svc.Update(ctx, site)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	db.AssertExpectations(t)
}

// ---------- Delete ----------

func TestSiteService_Delete_Success(t *testing.T) {
	db := &mockDB{}
	svc := NewSiteService(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).Return(execTag(1), nil)

	err := svc.Delete(ctx, 12)
	require.NoError(t, err)
	db.AssertExpectations(t)
}

func TestSiteService_Delete_NotFound(t *testing.T) {
	db := &mockDB{}
	svc := NewSiteService(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).Return(execTag(0), nil)

	err := svc.Delete(ctx, 404)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	db.AssertExpectations(t)
}

// ---------- Export ----------

func TestSiteService_Export_Success(t *testing.T) {
	db := &mockDB{}
	svc := NewSiteService(db)
	ctx := context.Background()

	rows := newMockRows(
		func(dest ...any) error {
			*(dest[0].(*string)) = "AMS 1"
			*(dest[1].(*string)) = "ams-1"
			*(dest[2].(*string)) = "Europe"
			*(dest[3].(*string)) = ""
			*(dest[4].(*string)) = "Equinix AM7"
			*(dest[6].(*string)) = "NOC"
			*(dest[7].(*string)) = "+31 20 000 0000"
			*(dest[8].(*string)) = "noc@example.com"
			return nil
		},
	)
	db.On("Query", ctx, mock.AnythingOfType("string"), mock.Anything).Return(rows, nil)

	result, err := svc.Export(ctx)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "AMS 1", result[0].Name)
	assert.Equal(t, "Europe", result[0].Region)
	assert.Nil(t, result[0].ASN)
	db.AssertExpectations(t)
}

func TestSiteService_Export_QueryError(t *testing.T) {
	db := &mockDB{}
	svc := NewSiteService(db)
	ctx := context.Background()

	db.On("Query", ctx, mock.AnythingOfType("string"), mock.Anything).Return(nil, errors.New("connection lost"))

	result, err := svc.Export(ctx)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "export sites")
	db.AssertExpectations(t)
}
