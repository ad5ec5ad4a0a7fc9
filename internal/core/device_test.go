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

func deviceRow(id int64, name string) func(dest ...any) error {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	return func(dest ...any) error {
		n := name
		*(dest[0].(*int64)) = id
		*(dest[1].(**string)) = &n
		*(dest[2].(*int64)) = 4
		*(dest[3].(*string)) = "QFX5120-48Y"
		*(dest[4].(*string)) = "qfx5120-48y"
		*(dest[5].(*int64)) = 2
		*(dest[6].(*string)) = "Access Switch"
		*(dest[7].(*string)) = "access-switch"
		*(dest[11].(*string)) = "TA3917260123"
		*(dest[13].(*int64)) = 12
		*(dest[14].(*string)) = "AMS 1"
		*(dest[15].(*string)) = "ams-1"
		*(dest[20].(*string)) = "active"
		*(dest[22].(*json.RawMessage)) = json.RawMessage(`{}`)
		*(dest[23].(*time.Time)) = now
		*(dest[24].(*time.Time)) = now
		return nil
	}
}

// ---------- Create ----------

func TestDeviceService_Create_Success(t *testing.T) {
	db := &mockDB{}
	svc := NewDeviceService(db)
	ctx := context.Background()

	name := "sw-ams1-01"
	device := &model.Device{Name: &name, DeviceTypeID: 4, DeviceRoleID: 2, SiteID: 12, Status: "active"}

	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(idRow(31))

	err := svc.Create(ctx, device)
	require.NoError(t, err)
	assert.Equal(t, int64(31), device.ID)
	db.AssertExpectations(t)
}

func TestDeviceService_Create_DBError(t *testing.T) {
	db := &mockDB{}
	svc := NewDeviceService(db)
	ctx := context.Background()

	name := "sw-ams1-01"
	device := &model.Device{Name: &name, DeviceTypeID: 4, DeviceRoleID: 2, SiteID: 12, Status: "active"}

	row := &mockRow{scanFunc: func(dest ...any) error {
		return errors.New("foreign key violation")
	}}
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(row)

	err := svc.Create(ctx, device)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create device")
	db.AssertExpectations(t)
}

// ---------- GetByID ----------

func TestDeviceService_GetByID_Success(t *testing.T) {
	db := &mockDB{}
	svc := NewDeviceService(db)
	ctx := context.Background()

	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(&mockRow{scanFunc: deviceRow(31, "sw-ams1-01")})

	result, err := svc.GetByID(ctx, 31)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, int64(31), result.ID)
	require.NotNil(t, result.Name)
	assert.Equal(t, "sw-ams1-01", *result.Name)
	require.NotNil(t, result.DeviceType)
	assert.Equal(t, "qfx5120-48y", result.DeviceType.Slug)
	require.NotNil(t, result.Site)
	assert.Equal(t, "ams-1", result.Site.Slug)
	assert.Nil(t, result.Tenant)
	assert.Nil(t, result.Rack)
	assert.Equal(t, "active", result.Status)
	db.AssertExpectations(t)
}

func TestDeviceService_GetByID_NotFound(t *testing.T) {
	db := &mockDB{}
	svc := NewDeviceService(db)
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

func TestDeviceService_List_Success(t *testing.T) {
	db := &mockDB{}
	svc := NewDeviceService(db)
	ctx := context.Background()

	rows := newMockRows(
		deviceRow(31, "sw-ams1-01"),
		deviceRow(32, "sw-ams1-02"),
	)
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(countRow(2))
	db.On("Query", ctx, mock.AnythingOfType("string"), mock.Anything).Return(rows, nil)

	result, total, err := svc.List(ctx, DeviceFilter{}, 50, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, result, 2)
	assert.Equal(t, "sw-ams1-01", *result[0].Name)
	assert.Equal(t, "sw-ams1-02", *result[1].Name)
	db.AssertExpectations(t)
}

func TestDeviceService_List_SiteFilterArgs(t *testing.T) {
	db := &mockDB{}
	svc := NewDeviceService(db)
	ctx := context.Background()

	siteID := int64(12)
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), []any{siteID}).Return(countRow(0))
	db.On("Query", ctx, mock.AnythingOfType("string"), []any{siteID, 50, 0}).Return(newEmptyMockRows(), nil)

	result, total, err := svc.List(ctx, DeviceFilter{SiteID: &siteID}, 50, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, result)
	db.AssertExpectations(t)
}

func TestDeviceService_List_CombinedFilterArgs(t *testing.T) {
	db := &mockDB{}
	svc := NewDeviceService(db)
	ctx := context.Background()

	// Placeholders are numbered in fixed filter order: search, site,
	// rack, role, tenant, status.
	rackID := int64(7)
	db.On("QueryRow", ctx, mock.AnythingOfType("string"),
		[]any{rackID, "access-switch", "active"}).Return(countRow(0))
	db.On("Query", ctx, mock.AnythingOfType("string"),
		[]any{rackID, "access-switch", "active", 50, 0}).Return(newEmptyMockRows(), nil)

	result, total, err := svc.List(ctx, DeviceFilter{
		RackID:   &rackID,
		RoleSlug: "access-switch",
		Status:   "active",
	}, 50, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, result)
	db.AssertExpectations(t)
}

func TestDeviceService_List_CountError(t *testing.T) {
	db := &mockDB{}
	svc := NewDeviceService(db)
	ctx := context.Background()

	row := &mockRow{scanFunc: func(dest ...any) error {
		return errors.New("connection lost")
	}}
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(row)

	result, _, err := svc.List(ctx, DeviceFilter{}, 50, 0)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "count devices")
	db.AssertExpectations(t)
}

// ---------- Update ----------

func TestDeviceService_Update_Success(t *testing.T) {
	db := &mockDB{}
	svc := NewDeviceService(db)
	ctx := context.Background()

	name := "sw-ams1-01"
	device := &model.Device{ID: 31, Name: &name, DeviceTypeID: 4, DeviceRoleID: 2, SiteID: 12, Status: "active"}

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).Return(execTag(1), nil)

	err := svc.Update(ctx, device)
	require.NoError(t, err)
	db.AssertExpectations(t)
}

func TestDeviceService_Update_NotFound(t *testing.T) {
	db := &mockDB{}
	svc := NewDeviceService(db)
	ctx := context.Background()

	name := "sw-ams1-01"
	device := &model.Device{ID: 404, Name: &name, DeviceTypeID: 4, DeviceRoleID: 2, SiteID: 12, Status: "active"}

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).Return(execTag(0), nil)

	err := svc.Update(ctx, device)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	db.AssertExpectations(t)
}

// ---------- Delete ----------

func TestDeviceService_Delete_Success(t *testing.T) {
	db := &mockDB{}
	svc := NewDeviceService(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).Return(execTag(1), nil)

	err := svc.Delete(ctx, 31)
	require.NoError(t, err)
	db.AssertExpectations(t)
}

func TestDeviceService_Delete_NotFound(t *testing.T) {
	db := &mockDB{}
	svc := NewDeviceService(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).Return(execTag(0), nil)

	err := svc.Delete(ctx, 404)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	db.AssertExpectations(t)
}
