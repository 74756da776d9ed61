package entity

import "time"

type Receipt struct {
	ListingID string        `json:"listingId"`
	Method    PaymentMethod `json:"method"`
	ReceiptID string        `json:"receiptId"`
	CreatedAt time.Time     `json:"createdAt"`
}

type PurchaseStatus string

const (
	PurchaseCompleted PurchaseStatus = "completed"
)

// Purchase is one entry of a session's purchase map, keyed by listing id.
type Purchase struct {
	Receipt
	Status PurchaseStatus `json:"status"`
}
