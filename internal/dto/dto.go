package dto

type CheckoutRequest struct {
	GameID   string `json:"gameId"`
	Email    string `json:"email"`
	Provider string `json:"provider,omitempty"`
}

type CheckoutResponse struct {
	SessionID string `json:"sessionId"`
	// Set for providers that redirect through an approval page (PayPal).
	ApprovalURL string `json:"approvalUrl,omitempty"`
}

type RecoverRequest struct {
	Email string `json:"email"`
}

type RecoverResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type GameFileSummary struct {
	Name     string  `json:"name"`
	Filename string  `json:"filename"`
	SizeGB   float64 `json:"sizeGb,omitempty"`
}

// GameSummary is one catalog entry as served by the games listing.
type GameSummary struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Price       int64             `json:"price"` // minor units
	Currency    string            `json:"currency"`
	Cover       string            `json:"cover,omitempty"`
	Thumbnail   string            `json:"thumbnail,omitempty"`
	Featured    bool              `json:"featured,omitempty"`
	ReleaseDate string            `json:"releaseDate,omitempty"`
	Files       []GameFileSummary `json:"files,omitempty"`
}

// DownloadFileEntry is one downloadable file on the game's download page.
type DownloadFileEntry struct {
	Name     string  `json:"name"`
	Filename string  `json:"filename"`
	SizeGB   float64 `json:"sizeGb,omitempty"`
	URL      string  `json:"url"`
}

// DownloadListResponse is the body served at the emailed download URL.
type DownloadListResponse struct {
	GameID    string              `json:"gameId"`
	GameTitle string              `json:"gameTitle"`
	Files     []DownloadFileEntry `json:"files"`
}

// ErrorResponse is the structured error envelope all endpoints return, so a
// thin front end can render actionable guidance.
type ErrorResponse struct {
	Error       string `json:"error"`
	Code        string `json:"code,omitempty"`
	RecoveryURL string `json:"recoveryUrl,omitempty"`
}
