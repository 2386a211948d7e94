package masterdata

import (
	"encoding/json"
	"time"

	"github.com/PLZ-test/wms/internal/domain/shared"
	"github.com/google/uuid"
)

// Shipper represents a shipper (cargo owner) managed by a center
type Shipper struct {
	shared.BaseEntity
	CenterID uuid.UUID `gorm:"type:uuid;not null;index"`
	Center   *Center   `gorm:"constraint:OnDelete:CASCADE"`
	Name     string    `gorm:"size:100;uniqueIndex;not null"`
	Contact  string    `gorm:"size:100"`
	Address  string    `gorm:"size:255"`
}

// NewShipper creates a new shipper belonging to a center
func NewShipper(centerID uuid.UUID, name, contact, address string) (*Shipper, error) {
	if centerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CENTER", "Center ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_SHIPPER_NAME", "Shipper name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_SHIPPER_NAME", "Shipper name cannot exceed 100 characters")
	}
	return &Shipper{
		BaseEntity: shared.NewBaseEntity(),
		CenterID:   centerID,
		Name:       name,
		Contact:    contact,
		Address:    address,
	}, nil
}

// ChannelCredential holds API credentials for one shipper on one sales channel.
// The extra-info blob carries channel-specific fields (vendor IDs and the like)
// and is passed through to the channel client opaquely.
type ChannelCredential struct {
	shared.BaseEntity
	ShipperID   uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_shipper_channel"`
	Shipper     *Shipper    `gorm:"constraint:OnDelete:CASCADE"`
	ChannelType ChannelType `gorm:"size:20;not null;uniqueIndex:idx_shipper_channel"`
	AccessKey   string      `gorm:"size:255;not null"`
	SecretKey   string      `gorm:"size:255;not null"`
	ExtraInfo   string      `gorm:"type:text;default:'{}'"`
	IsActive    bool        `gorm:"not null;default:true"`
	LastUsedAt  *time.Time
}

// NewChannelCredential creates credentials for a shipper on a channel
func NewChannelCredential(shipperID uuid.UUID, channelType ChannelType, accessKey, secretKey, extraInfo string) (*ChannelCredential, error) {
	if shipperID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SHIPPER", "Shipper ID cannot be empty")
	}
	if !channelType.IsValid() {
		return nil, shared.NewDomainError("INVALID_CHANNEL_TYPE", "Unknown channel type: "+string(channelType))
	}
	if accessKey == "" || secretKey == "" {
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Access key and secret key are required")
	}
	if extraInfo == "" {
		extraInfo = "{}"
	}
	if !json.Valid([]byte(extraInfo)) {
		return nil, shared.NewDomainError("INVALID_EXTRA_INFO", "Extra info must be valid JSON")
	}
	return &ChannelCredential{
		BaseEntity:  shared.NewBaseEntity(),
		ShipperID:   shipperID,
		ChannelType: channelType,
		AccessKey:   accessKey,
		SecretKey:   secretKey,
		ExtraInfo:   extraInfo,
		IsActive:    true,
	}, nil
}

// ExtraInfoMap decodes the extra-info JSON blob. A malformed blob yields an
// empty map rather than an error; the credential is still usable.
func (c *ChannelCredential) ExtraInfoMap() map[string]string {
	out := make(map[string]string)
	if c.ExtraInfo == "" {
		return out
	}
	var raw map[string]any
	if err := json.Unmarshal([]byte(c.ExtraInfo), &raw); err != nil {
		return out
	}
	for k, v := range raw {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}

// Deactivate disables collection for this credential
func (c *ChannelCredential) Deactivate() {
	c.IsActive = false
	c.UpdatedAt = time.Now()
}

// Activate enables collection for this credential
func (c *ChannelCredential) Activate() {
	c.IsActive = true
	c.UpdatedAt = time.Now()
}

// TouchUsed records when the credential was last used for a collection pass
func (c *ChannelCredential) TouchUsed(at time.Time) {
	c.LastUsedAt = &at
	c.UpdatedAt = time.Now()
}
