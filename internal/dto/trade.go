package dto

import (
	"encoding/json"
	"time"

	"github.com/nadzrin/tawarruq_financing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TradeResponse is the API representation of one Tawarruq trade leg.
type TradeResponse struct {
	TradeID           string               `json:"tradeID"`
	TradeType         domain.TradeType     `json:"tradeType"`
	CommodityID       string               `json:"commodityID"`
	CommodityType     domain.CommodityType `json:"commodityType"`
	Quantity          decimal.Decimal      `json:"quantity"`
	UnitPrice         decimal.Decimal      `json:"unitPrice"`
	TotalAmount       decimal.Decimal      `json:"totalAmount"`
	VenueReference    string               `json:"venueReference"`
	Timestamp         time.Time            `json:"timestamp"`
	SequenceNumber    int                  `json:"sequenceNumber"`
	Seller            string               `json:"seller"`
	Buyer             string               `json:"buyer"`
	CertificateNumber string               `json:"certificateNumber"`
	Status            domain.TradeStatus   `json:"status"`
}

// ToTradeResponse converts a domain trade to its API shape.
func ToTradeResponse(t *domain.CommodityTrade) TradeResponse {
	return TradeResponse{
		TradeID:           t.TradeID,
		TradeType:         t.TradeType,
		CommodityID:       t.CommodityID,
		CommodityType:     t.CommodityType,
		Quantity:          t.Quantity,
		UnitPrice:         t.UnitPrice,
		TotalAmount:       t.TotalAmount,
		VenueReference:    t.VenueReference,
		Timestamp:         t.Timestamp,
		SequenceNumber:    t.SequenceNumber,
		Seller:            t.Seller,
		Buyer:             t.Buyer,
		CertificateNumber: t.CertificateNumber,
		Status:            t.Status,
	}
}

// ToTradeResponses converts a slice of domain trades.
func ToTradeResponses(trades []domain.CommodityTrade) []TradeResponse {
	responses := make([]TradeResponse, len(trades))
	for i := range trades {
		responses[i] = ToTradeResponse(&trades[i])
	}
	return responses
}

// ValidationRecordResponse is the API representation of a persisted
// validation record. Details carries the serialized report as-is.
type ValidationRecordResponse struct {
	ValidationID     string                   `json:"validationID"`
	ValidationType   domain.ValidationType    `json:"validationType"`
	Result           domain.ValidationOutcome `json:"result"`
	Details          json.RawMessage          `json:"details"`
	ValidatorVersion string                   `json:"validatorVersion"`
	ValidatedAt      time.Time                `json:"validatedAt"`
}

// ToValidationRecordResponses converts persisted validation records.
func ToValidationRecordResponses(records []domain.ValidationRecord) []ValidationRecordResponse {
	responses := make([]ValidationRecordResponse, len(records))
	for i, rec := range records {
		responses[i] = ValidationRecordResponse{
			ValidationID:     rec.ValidationID,
			ValidationType:   rec.ValidationType,
			Result:           rec.Result,
			Details:          json.RawMessage(rec.Details),
			ValidatorVersion: rec.ValidatorVersion,
			ValidatedAt:      rec.ValidatedAt,
		}
	}
	return responses
}
