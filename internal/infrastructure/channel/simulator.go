package channelclient

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/PLZ-test/wms/internal/domain/channel"
	"github.com/PLZ-test/wms/internal/domain/masterdata"
	"github.com/PLZ-test/wms/internal/domain/order"
	"github.com/google/uuid"
)

// simulator generates plausible orders for one marketplace. It stands in for
// the marketplace's order API during development and demos.
type simulator struct {
	code       masterdata.ChannelType
	noPrefix   string
	maxPerPull int
	rng        *rand.Rand
}

// NewCoupangClient returns the Coupang order-collection simulator
func NewCoupangClient() channel.Client {
	return newSimulator(masterdata.ChannelTypeCoupang, "CPG")
}

// NewNaverClient returns the Naver SmartStore order-collection simulator
func NewNaverClient() channel.Client {
	return newSimulator(masterdata.ChannelTypeNaver, "NVR")
}

// NewElevenSTClient returns the 11st order-collection simulator
func NewElevenSTClient() channel.Client {
	return newSimulator(masterdata.ChannelTypeElevenST, "EST")
}

// NewGmarketClient returns the Gmarket order-collection simulator
func NewGmarketClient() channel.Client {
	return newSimulator(masterdata.ChannelTypeGmarket, "GMK")
}

func newSimulator(code masterdata.ChannelType, noPrefix string) *simulator {
	return &simulator{
		code:       code,
		noPrefix:   noPrefix,
		maxPerPull: 4,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Code implements channel.Client
func (s *simulator) Code() masterdata.ChannelType {
	return s.code
}

var sampleRecipients = []struct {
	name    string
	phone   string
	address string
	zip     string
}{
	{"Kim Minji", "010-2345-6789", "12 Teheran-ro, Gangnam-gu, Seoul", "06234"},
	{"Lee Jiho", "010-3456-7890", "88 Haeundae-ro, Haeundae-gu, Busan", "48094"},
	{"Park Seoyeon", "010-4567-8901", "25 Dongseong-ro, Jung-gu, Daegu", "41911"},
	{"Choi Hajun", "010-5678-9012", "3 Songdo-gwahak-ro, Yeonsu-gu, Incheon", "21984"},
	{"Jung Eunwoo", "010-6789-0123", "101 Sangmu-daero, Seo-gu, Gwangju", "61949"},
}

var sampleMemos = []string{"", "", "leave at the door", "call before delivery", "security office"}

// defaultSampleProducts are used when the credential carries no catalog hint
var defaultSampleProducts = []string{"8800001", "8800002", "8800003"}

// FetchOrders implements channel.Client. The credential's extra-info key
// "sample_products" (comma-separated identifiers) steers generated line items
// toward a real catalog so collected orders resolve.
func (s *simulator) FetchOrders(ctx context.Context, window channel.Window, creds channel.Credentials) ([]order.RawOrder, error) {
	if err := window.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", channel.ErrChannelRequestFailed, err)
	}
	if creds.AccessKey == "" || creds.SecretKey == "" {
		return nil, channel.ErrChannelAuthFailed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	products := defaultSampleProducts
	if hint := creds.Extra["sample_products"]; hint != "" {
		products = strings.Split(hint, ",")
	}

	span := window.End.Sub(window.Start)
	count := s.rng.Intn(s.maxPerPull + 1)
	orders := make([]order.RawOrder, 0, count)
	for i := 0; i < count; i++ {
		recipient := sampleRecipients[s.rng.Intn(len(sampleRecipients))]
		placedAt := window.Start.Add(time.Duration(s.rng.Int63n(int64(span) + 1)))
		orders = append(orders, order.RawOrder{
			OrderNo:        s.orderNo(placedAt),
			OrderDate:      placedAt,
			ChannelName:    s.code.DisplayName(),
			RecipientName:  recipient.name,
			RecipientPhone: recipient.phone,
			Address:        recipient.address,
			Postcode:       recipient.zip,
			DeliveryMemo:   sampleMemos[s.rng.Intn(len(sampleMemos))],
			Items: []order.RawLineItem{{
				ProductIdentifier: products[s.rng.Intn(len(products))],
				Quantity:          1 + s.rng.Intn(3),
			}},
		})
	}
	return orders, nil
}

func (s *simulator) orderNo(placedAt time.Time) string {
	return fmt.Sprintf("%s-%s-%s", s.noPrefix, placedAt.Format("20060102"), uuid.NewString()[:8])
}
