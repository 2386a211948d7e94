package order

import (
	"time"

	"github.com/PLZ-test/wms/internal/domain/masterdata"
	"github.com/PLZ-test/wms/internal/domain/shared"
	"github.com/google/uuid"
)

// CollectionStatus is the outcome of one channel-collection attempt
type CollectionStatus string

const (
	CollectionStatusSuccess CollectionStatus = "SUCCESS"
	CollectionStatusPartial CollectionStatus = "PARTIAL"
	CollectionStatusFailed  CollectionStatus = "FAILED"
)

// IsValid returns true if the status is valid
func (s CollectionStatus) IsValid() bool {
	switch s {
	case CollectionStatusSuccess, CollectionStatusPartial, CollectionStatusFailed:
		return true
	default:
		return false
	}
}

const collectionLogErrorLimit = 1000

// CollectionLog is one row per channel-collection attempt. Append-only,
// never updated.
type CollectionLog struct {
	shared.BaseEntity
	ShipperID   uuid.UUID              `gorm:"type:uuid;not null;index"`
	Shipper     *masterdata.Shipper    `gorm:"constraint:OnDelete:CASCADE"`
	ChannelType masterdata.ChannelType `gorm:"size:20;not null"`
	CollectedAt time.Time              `gorm:"not null;index"`
	Status      CollectionStatus       `gorm:"size:20;not null"`

	TotalCount   int `gorm:"not null;default:0"` // rows fetched from the source
	SuccessCount int `gorm:"not null;default:0"`
	ErrorCount   int `gorm:"not null;default:0"`

	// ErrorMessage is a truncated summary of the first failures
	ErrorMessage string `gorm:"type:text"`
}

// NewCollectionLog records one collection attempt. The status is derived from
// the counts when not forced: no errors is SUCCESS, some successes is PARTIAL,
// none is FAILED.
func NewCollectionLog(shipperID uuid.UUID, channelType masterdata.ChannelType, total, success, errorCount int, errorMessage string) (*CollectionLog, error) {
	if shipperID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SHIPPER", "Shipper ID cannot be empty")
	}
	status := CollectionStatusSuccess
	if errorCount > 0 {
		if success > 0 {
			status = CollectionStatusPartial
		} else {
			status = CollectionStatusFailed
		}
	}
	if len(errorMessage) > collectionLogErrorLimit {
		errorMessage = errorMessage[:collectionLogErrorLimit]
	}
	return &CollectionLog{
		BaseEntity:   shared.NewBaseEntity(),
		ShipperID:    shipperID,
		ChannelType:  channelType,
		CollectedAt:  time.Now(),
		Status:       status,
		TotalCount:   total,
		SuccessCount: success,
		ErrorCount:   errorCount,
		ErrorMessage: errorMessage,
	}, nil
}

// NewFailedCollectionLog records an attempt where the channel itself failed
// before any order could be processed (auth, network, malformed response)
func NewFailedCollectionLog(shipperID uuid.UUID, channelType masterdata.ChannelType, cause string) (*CollectionLog, error) {
	log, err := NewCollectionLog(shipperID, channelType, 0, 0, 0, cause)
	if err != nil {
		return nil, err
	}
	log.Status = CollectionStatusFailed
	return log, nil
}
