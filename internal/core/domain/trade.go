package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CommodityType enumerates the commodities traded on the venue.
type CommodityType string

const (
	CPO          CommodityType = "CPO"
	PlasticResin CommodityType = "PLASTIC_RESIN"
	RBDPalmOlein CommodityType = "RBD_PALM_OLEIN"
)

// TradeType distinguishes the two legs of a Tawarruq trade.
type TradeType string

const (
	T1Purchase TradeType = "T1_PURCHASE" // bank buys the commodity lot
	T2Sale     TradeType = "T2_SALE"     // customer resells the same lot
)

// TradeStatus is the lifecycle status of a single trade record.
type TradeStatus string

const (
	TradePending   TradeStatus = "pending"
	TradeValidated TradeStatus = "validated"
	TradeRejected  TradeStatus = "rejected"
)

// CommodityTrade is one executed leg of a Tawarruq transaction as reported
// by the commodity venue. Records are immutable once created; quantity is
// in metric tonnes with 3-decimal precision, prices are MYR with 2 decimals.
type CommodityTrade struct {
	TradeID           string          `json:"tradeID"`
	FinancingID       string          `json:"financingID"`
	TradeType         TradeType       `json:"tradeType"`
	CommodityID       string          `json:"commodityID"` // venue lot identifier, shared by both legs
	CommodityType     CommodityType   `json:"commodityType"`
	Quantity          decimal.Decimal `json:"quantity"`
	UnitPrice         decimal.Decimal `json:"unitPrice"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	VenueReference    string          `json:"venueReference"`
	Timestamp         time.Time       `json:"timestamp"`
	SequenceNumber    int             `json:"sequenceNumber"` // 1 for T1, 2 for T2
	Seller            string          `json:"seller"`
	Buyer             string          `json:"buyer"`
	CertificateNumber string          `json:"certificateNumber"`
	Status            TradeStatus     `json:"status"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// CertificateVerification is the venue's answer to a certificate check.
type CertificateVerification struct {
	Valid    bool      `json:"valid"`
	Issuer   string    `json:"issuer"`
	IssuedAt time.Time `json:"issuedAt"`
}
