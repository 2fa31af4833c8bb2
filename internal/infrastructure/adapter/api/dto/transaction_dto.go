package dto

// TransactionItemRequest represents one sold line in a checkout request
type TransactionItemRequest struct {
	VendorID    int64  `json:"vendorId" binding:"required"`
	Description string `json:"description"`
	Price       string `json:"price" binding:"required"`
	Quantity    int64  `json:"quantity" binding:"required"`
}

// CreateTransactionRequest represents the API request for recording a checkout
type CreateTransactionRequest struct {
	Items         []TransactionItemRequest `json:"items" binding:"required,min=1,dive"`
	SalesTax      string                   `json:"salesTax" binding:"required"`
	PaymentMethod string                   `json:"paymentMethod" binding:"required,oneof=CASH CARD"`
}

// UpdateItemRequest carries the optional new fields for a transaction item.
// Absent fields keep their current values.
type UpdateItemRequest struct {
	VendorID    *int64  `json:"vendorId"`
	Description *string `json:"description"`
	Price       *string `json:"price"`
	Quantity    *int64  `json:"quantity"`
}

// TransactionItemResponse represents one sold line in API responses
type TransactionItemResponse struct {
	ID            string `json:"id"`
	TransactionID string `json:"transactionId"`
	VendorID      int64  `json:"vendorId"`
	Description   string `json:"description"`
	Price         string `json:"price"`
	Quantity      int64  `json:"quantity"`
	Total         string `json:"total"`
}

// TransactionResponse represents a recorded checkout in API responses
type TransactionResponse struct {
	ID            string                    `json:"id"`
	SubTotal      string                    `json:"subTotal"`
	SalesTax      string                    `json:"salesTax"`
	Total         string                    `json:"total"`
	PaymentMethod string                    `json:"paymentMethod"`
	CreatedAt     string                    `json:"createdAt"`
	Items         []TransactionItemResponse `json:"items"`
}

// AggregateResponse represents a summarized window of transactions
type AggregateResponse struct {
	Transactions  []TransactionResponse `json:"transactions"`
	Count         int64                 `json:"count"`
	TotalItems    int64                 `json:"totalItems"`
	TotalSalesTax string                `json:"totalSalesTax"`
	TotalAmount   string                `json:"totalAmount"`
	GrandTotal    string                `json:"grandTotal"`
}
