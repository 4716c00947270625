package storage_test

import (
	"testing"

	"atc-cli/booking"
	"atc-cli/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityRoundTrip(t *testing.T) {
	t.Setenv(storage.ConfigDirEnv, t.TempDir())

	ident, err := storage.LoadIdentity()
	require.NoError(t, err)
	assert.Nil(t, ident)

	require.NoError(t, storage.SaveIdentity("485573"))

	ident, err = storage.LoadIdentity()
	require.NoError(t, err)
	require.NotNil(t, ident)
	assert.Equal(t, "485573", ident.VID)
	assert.NotEmpty(t, ident.SavedAt)

	require.NoError(t, storage.ClearIdentity())

	ident, err = storage.LoadIdentity()
	require.NoError(t, err)
	assert.Nil(t, ident)
}

func TestSaveIdentityTrims(t *testing.T) {
	t.Setenv(storage.ConfigDirEnv, t.TempDir())

	require.NoError(t, storage.SaveIdentity("  123456 "))
	ident, err := storage.LoadIdentity()
	require.NoError(t, err)
	require.NotNil(t, ident)
	assert.Equal(t, "123456", ident.VID)
}

func TestSaveIdentityRejectsInvalidVID(t *testing.T) {
	t.Setenv(storage.ConfigDirEnv, t.TempDir())

	assert.ErrorIs(t, storage.SaveIdentity("12a456"), booking.ErrVIDDigits)
	assert.ErrorIs(t, storage.SaveIdentity("123"), booking.ErrVIDRange)
	assert.ErrorIs(t, storage.SaveIdentity(""), booking.ErrVIDRequired)

	ident, err := storage.LoadIdentity()
	require.NoError(t, err)
	assert.Nil(t, ident)
}

func TestClearIdentityWhenAbsent(t *testing.T) {
	t.Setenv(storage.ConfigDirEnv, t.TempDir())
	assert.NoError(t, storage.ClearIdentity())
}
