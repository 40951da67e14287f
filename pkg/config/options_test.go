package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOptions(t *testing.T) {
	opts, err := LoadOptions()
	require.NoError(t, err)

	assert.Len(t, opts.Provinces, 31, "the fixed province list")
	assert.Equal(t, []string{"بله", "خیر"}, opts.ContractOptions)
	assert.Equal(t, "رد شدن", opts.SkipToken)
}

func TestOptionMembership(t *testing.T) {
	opts, err := LoadOptions()
	require.NoError(t, err)

	assert.True(t, opts.IsProvince("تهران"))
	assert.True(t, opts.IsProvince("کهگیلویه و بویراحمد"))
	assert.False(t, opts.IsProvince("tehran"))
	assert.False(t, opts.IsProvince("تهران "), "membership is exact match, not trimmed")

	assert.True(t, opts.IsContractOption("بله"))
	assert.True(t, opts.IsContractOption("خیر"))
	assert.False(t, opts.IsContractOption("شاید"))
	assert.Equal(t, "بله", opts.ContractYes())

	assert.True(t, opts.IsUnknownDate("نامشخص"))
	assert.True(t, opts.IsUnknownDate("نامعلوم"))
	assert.False(t, opts.IsUnknownDate("2024-01-01"))
}
