package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ---------- Create ----------

func TestTokenService_Create_Success(t *testing.T) {
	db := &mockDB{}
	svc := NewTokenService(db)
	ctx := context.Background()

	now := time.Now().Truncate(time.Microsecond)

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).Return(execTag(1), nil)
	createdAtRow := &mockRow{scanFunc: func(dest ...any) error {
		*(dest[0].(*time.Time)) = now
		return nil
	}}
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(createdAtRow)

	token, rawKey, err := svc.Create(ctx, "provisioning", true)
	require.NoError(t, err)
	require.NotNil(t, token)
	assert.Len(t, rawKey, 40)
	assert.Equal(t, rawKey[:8], token.KeyPrefix)
	assert.Equal(t, "provisioning", token.Name)
	assert.True(t, token.WriteEnabled)
	assert.Equal(t, now, token.CreatedAt)
	assert.NotEmpty(t, token.ID)
	db.AssertExpectations(t)
}

func TestTokenService_Create_InsertError(t *testing.T) {
	db := &mockDB{}
	svc := NewTokenService(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).Return(execTag(0), errors.New("db error"))

	token, rawKey, err := svc.Create(ctx, "provisioning", false)
	require.Error(t, err)
	assert.Nil(t, token)
	assert.Empty(t, rawKey)
	assert.Contains(t, err.Error(), "insert token")
	db.AssertExpectations(t)
}

func TestTokenService_CreateWithRawKey_TooShort(t *testing.T) {
	db := &mockDB{}
	svc := NewTokenService(db)
	ctx := context.Background()

	token, err := svc.CreateWithRawKey(ctx, "dev", "short", false)
	require.Error(t, err)
	assert.Nil(t, token)
}

// ---------- Authenticate ----------

func TestTokenService_Authenticate_Success(t *testing.T) {
	db := &mockDB{}
	svc := NewTokenService(db)
	ctx := context.Background()

	now := time.Now().Truncate(time.Microsecond)

	row := &mockRow{scanFunc: func(dest ...any) error {
		*(dest[0].(*string)) = "7a9f9b4e-0000-0000-0000-000000000001"
		*(dest[1].(*string)) = "readonly"
		*(dest[2].(*string)) = "abcdef01"
		*(dest[3].(*bool)) = false
		*(dest[4].(*time.Time)) = now
		return nil
	}}
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(row)

	token, err := svc.Authenticate(ctx, "abcdef0123456789abcdef0123456789abcdef01")
	require.NoError(t, err)
	require.NotNil(t, token)
	assert.Equal(t, "readonly", token.Name)
	assert.False(t, token.WriteEnabled)
	db.AssertExpectations(t)
}

func TestTokenService_Authenticate_UnknownKey(t *testing.T) {
	db := &mockDB{}
	svc := NewTokenService(db)
	ctx := context.Background()

	row := &mockRow{scanFunc: func(dest ...any) error {
		return pgx.ErrNoRows
	}}
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(row)

	token, err := svc.Authenticate(ctx, "ffffffffffffffffffffffffffffffffffffffff")
	require.Error(t, err)
	assert.Nil(t, token)
	assert.ErrorIs(t, err, ErrNotFound)
	db.AssertExpectations(t)
}

// ---------- List ----------

func TestTokenService_List_Success(t *testing.T) {
	db := &mockDB{}
	svc := NewTokenService(db)
	ctx := context.Background()

	now := time.Now().Truncate(time.Microsecond)

	rows := newMockRows(
		func(dest ...any) error {
			*(dest[0].(*string)) = "7a9f9b4e-0000-0000-0000-000000000001"
			*(dest[1].(*string)) = "provisioning"
			*(dest[2].(*string)) = "abcdef01"
			*(dest[3].(*bool)) = true
			*(dest[4].(*time.Time)) = now
			return nil
		},
	)
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(countRow(1))
	db.On("Query", ctx, mock.AnythingOfType("string"), mock.Anything).Return(rows, nil)

	result, total, err := svc.List(ctx, 50, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, result, 1)
	assert.Equal(t, "provisioning", result[0].Name)
	assert.Equal(t, "abcdef01", result[0].KeyPrefix)
	db.AssertExpectations(t)
}

// ---------- Revoke ----------

func TestTokenService_Revoke_Success(t *testing.T) {
	db := &mockDB{}
	svc := NewTokenService(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).Return(execTag(1), nil)

	err := svc.Revoke(ctx, "7a9f9b4e-0000-0000-0000-000000000001")
	require.NoError(t, err)
	db.AssertExpectations(t)
}

func TestTokenService_Revoke_AlreadyRevoked(t *testing.T) {
	db := &mockDB{}
	svc := NewTokenService(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).Return(execTag(0), nil)

	err := svc.Revoke(ctx, "7a9f9b4e-0000-0000-0000-000000000001")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	db.AssertExpectations(t)
}
