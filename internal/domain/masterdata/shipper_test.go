package masterdata

import (
	"strings"
	"testing"
	"time"

	"github.com/PLZ-test/wms/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCenter(t *testing.T) {
	t.Run("creates center with valid inputs", func(t *testing.T) {
		c, err := NewCenter("Incheon Center", "55 Airport-ro, Incheon")
		require.NoError(t, err)
		assert.Equal(t, "Incheon Center", c.Name)
		assert.Equal(t, "55 Airport-ro, Incheon", c.Address)
		assert.NotEmpty(t, c.ID)
	})

	t.Run("rejects empty and overlong names", func(t *testing.T) {
		_, err := NewCenter("", "addr")
		require.Error(t, err)
		_, err = NewCenter(strings.Repeat("a", 101), "addr")
		require.Error(t, err)
	})
}

func TestNewShipper(t *testing.T) {
	centerID := uuid.New()

	t.Run("creates shipper with valid inputs", func(t *testing.T) {
		s, err := NewShipper(centerID, "Acme Trading", "010-1234-5678", "Seoul")
		require.NoError(t, err)
		assert.Equal(t, centerID, s.CenterID)
		assert.Equal(t, "Acme Trading", s.Name)
	})

	t.Run("rejects empty center", func(t *testing.T) {
		_, err := NewShipper(uuid.Nil, "Acme Trading", "", "")
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CENTER", domainErr.Code)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewShipper(centerID, "", "", "")
		require.Error(t, err)
	})
}

func TestNewChannelCredential(t *testing.T) {
	shipperID := uuid.New()

	t.Run("creates active credential", func(t *testing.T) {
		c, err := NewChannelCredential(shipperID, ChannelTypeCoupang, "ak", "sk", `{"vendor_id":"V-100"}`)
		require.NoError(t, err)
		assert.True(t, c.IsActive)
		assert.Nil(t, c.LastUsedAt)
		assert.Equal(t, ChannelTypeCoupang, c.ChannelType)
	})

	t.Run("defaults empty extra info to an empty object", func(t *testing.T) {
		c, err := NewChannelCredential(shipperID, ChannelTypeNaver, "ak", "sk", "")
		require.NoError(t, err)
		assert.Equal(t, "{}", c.ExtraInfo)
	})

	t.Run("rejects malformed extra info", func(t *testing.T) {
		_, err := NewChannelCredential(shipperID, ChannelTypeNaver, "ak", "sk", "{not json")
		require.Error(t, err)
	})

	t.Run("rejects unknown channel type", func(t *testing.T) {
		_, err := NewChannelCredential(shipperID, ChannelType("EBAY"), "ak", "sk", "")
		require.Error(t, err)
	})

	t.Run("rejects missing keys", func(t *testing.T) {
		_, err := NewChannelCredential(shipperID, ChannelTypeCoupang, "", "sk", "")
		require.Error(t, err)
		_, err = NewChannelCredential(shipperID, ChannelTypeCoupang, "ak", "", "")
		require.Error(t, err)
	})
}

func TestChannelCredential_ExtraInfoMap(t *testing.T) {
	t.Run("decodes string fields", func(t *testing.T) {
		c, err := NewChannelCredential(uuid.New(), ChannelTypeCoupang, "ak", "sk", `{"vendor_id":"V-100","retries":3}`)
		require.NoError(t, err)

		m := c.ExtraInfoMap()
		assert.Equal(t, "V-100", m["vendor_id"])
		_, ok := m["retries"] // non-string values are dropped
		assert.False(t, ok)
	})

	t.Run("malformed blob yields an empty map", func(t *testing.T) {
		c := &ChannelCredential{ExtraInfo: "{broken"}
		assert.Empty(t, c.ExtraInfoMap())
	})
}

func TestChannelCredential_Lifecycle(t *testing.T) {
	c, err := NewChannelCredential(uuid.New(), ChannelTypeCoupang, "ak", "sk", "")
	require.NoError(t, err)

	c.Deactivate()
	assert.False(t, c.IsActive)
	c.Activate()
	assert.True(t, c.IsActive)

	at := time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)
	c.TouchUsed(at)
	require.NotNil(t, c.LastUsedAt)
	assert.Equal(t, at, *c.LastUsedAt)
}

func TestNewSalesChannel(t *testing.T) {
	c, err := NewSalesChannel("Coupang")
	require.NoError(t, err)
	assert.Equal(t, "Coupang", c.Name)

	_, err = NewSalesChannel("")
	require.Error(t, err)
}

func TestNewCourier(t *testing.T) {
	c, err := NewCourier("CJ Logistics", "1588-1255")
	require.NoError(t, err)
	assert.Equal(t, "CJ Logistics", c.Name)

	_, err = NewCourier("", "")
	require.Error(t, err)
}
