package dto

// BoothRentalRequest represents the API request for a booth rental charge
type BoothRentalRequest struct {
	VendorID int64  `json:"vendorId" binding:"required"`
	Amount   string `json:"amount" binding:"required"`
	Year     int    `json:"year" binding:"required"`
	Month    int    `json:"month" binding:"required"`
}

// BoothRentalResponse represents a booth rental charge in API responses
type BoothRentalResponse struct {
	ID       uint64 `json:"id"`
	VendorID int64  `json:"vendorId"`
	Amount   string `json:"amount"`
	Year     int    `json:"year"`
	Month    int    `json:"month"`
}

// VendorPaymentRequest represents the API request for a payout to a vendor
type VendorPaymentRequest struct {
	VendorID    int64  `json:"vendorId" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
	Year        int    `json:"year" binding:"required"`
	Month       int    `json:"month" binding:"required"`
	Description string `json:"description"`
}

// VendorPaymentResponse represents a payout in API responses
type VendorPaymentResponse struct {
	ID          uint64 `json:"id"`
	VendorID    int64  `json:"vendorId"`
	Amount      string `json:"amount"`
	Year        int    `json:"year"`
	Month       int    `json:"month"`
	Description string `json:"description"`
}

// BalancePaymentRequest represents the API request for a manual balance settlement
type BalancePaymentRequest struct {
	VendorID      int64  `json:"vendorId" binding:"required"`
	Amount        string `json:"amount" binding:"required"`
	PaymentDate   string `json:"paymentDate" binding:"required"` // RFC 3339
	PaymentMethod string `json:"paymentMethod" binding:"required,oneof=Cash Check Card"`
	Description   string `json:"description"`
}

// BalancePaymentResponse represents a manual balance settlement in API responses
type BalancePaymentResponse struct {
	ID            uint64 `json:"id"`
	VendorID      int64  `json:"vendorId"`
	Amount        string `json:"amount"`
	PaymentDate   string `json:"paymentDate"`
	PaymentMethod string `json:"paymentMethod"`
	Description   string `json:"description"`
}

// SetBalanceRequest represents the API request for a manual balance overwrite
type SetBalanceRequest struct {
	Balance string `json:"balance" binding:"required"`
}
