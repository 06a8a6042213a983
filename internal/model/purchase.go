package model

import "time"

// PurchaseRecord is the durable grant created for one completed payment.
// Records live in the purchase store as a JSON array keyed by lowercased
// customer email; the JSON field names are the store's wire format.
type PurchaseRecord struct {
	SessionID       string    `json:"sessionId"` // provider-assigned, idempotency key
	GameID          string    `json:"gameId"`
	GameTitle       string    `json:"gameTitle"` // denormalized at issuance time
	CustomerEmail   string    `json:"customerEmail"`
	PurchaseDate    time.Time `json:"purchaseDate"`
	DownloadURL     string    `json:"downloadUrl"` // composed URL with embedded entitlement token
	DownloadExpires time.Time `json:"downloadExpires"`
	MaxDownloads    int       `json:"maxDownloads"`
	DownloadCount   int       `json:"downloadCount"`
}

// Expired reports whether the grant is past its expiry for new link
// generation. A record exactly at its expiry instant is still valid.
func (r *PurchaseRecord) Expired(now time.Time) bool {
	return now.After(r.DownloadExpires)
}
