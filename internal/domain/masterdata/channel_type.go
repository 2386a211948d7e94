package masterdata

// ChannelType identifies an external marketplace a shipper sells on
type ChannelType string

const (
	ChannelTypeCoupang     ChannelType = "COUPANG"
	ChannelTypeNaver       ChannelType = "NAVER"
	ChannelTypeElevenST    ChannelType = "11ST"
	ChannelTypeGmarket     ChannelType = "GMARKET"
	ChannelTypeAuction     ChannelType = "AUCTION"
	ChannelTypeWemakeprice ChannelType = "WEMAKEPRICE"
	ChannelTypeTmon        ChannelType = "TMON"
	ChannelTypeInterpark   ChannelType = "INTERPARK"
)

// IsValid returns true if the channel type is one of the known marketplaces
func (t ChannelType) IsValid() bool {
	switch t {
	case ChannelTypeCoupang, ChannelTypeNaver, ChannelTypeElevenST, ChannelTypeGmarket,
		ChannelTypeAuction, ChannelTypeWemakeprice, ChannelTypeTmon, ChannelTypeInterpark:
		return true
	default:
		return false
	}
}

// String returns the string representation of ChannelType
func (t ChannelType) String() string {
	return string(t)
}

// DisplayName returns a human-readable name for the marketplace; it is also
// the sales-channel name recorded on collected orders
func (t ChannelType) DisplayName() string {
	switch t {
	case ChannelTypeCoupang:
		return "Coupang"
	case ChannelTypeNaver:
		return "Naver SmartStore"
	case ChannelTypeElevenST:
		return "11st"
	case ChannelTypeGmarket:
		return "Gmarket"
	case ChannelTypeAuction:
		return "Auction"
	case ChannelTypeWemakeprice:
		return "WeMakePrice"
	case ChannelTypeTmon:
		return "TMON"
	case ChannelTypeInterpark:
		return "Interpark"
	default:
		return string(t)
	}
}

// AllChannelTypes returns every known channel type
func AllChannelTypes() []ChannelType {
	return []ChannelType{
		ChannelTypeCoupang,
		ChannelTypeNaver,
		ChannelTypeElevenST,
		ChannelTypeGmarket,
		ChannelTypeAuction,
		ChannelTypeWemakeprice,
		ChannelTypeTmon,
		ChannelTypeInterpark,
	}
}
