package entity

// VendorStatement is the per-vendor output of the monthly report: an
// independently derived reconstruction of the vendor's position for one
// calendar month, built from the raw items, charges and payments rather than
// the possibly stale running balance.
type VendorStatement struct {
	VendorID       int64  `json:"vendorId"`
	Name           string `json:"name"`
	CurrentBalance int64  `json:"currentBalance"` // Vendor.balance after any current-month resync

	// Current-period sales
	TotalItems      int64 `json:"totalItems"`
	CashSales       int64 `json:"cashSales"`
	CardSales       int64 `json:"cardSales"`
	TotalSales      int64 `json:"totalSales"`
	StoreCommission int64 `json:"storeCommission"`

	// Current-period charges and payments, as lists plus totals
	BoothCharges         []BoothRentalCharge `json:"boothCharges"`
	Payments             []VendorPayment     `json:"payments"`
	BalancePayments      []BalancePayment    `json:"balancePayments"`
	BoothRental          int64               `json:"boothRental"`
	TotalPayments        int64               `json:"totalPayments"`
	TotalBalancePayments int64               `json:"totalBalancePayments"`

	// Derived monthly position
	MonthlyEarnings int64 `json:"monthlyEarnings"` // totalSales - boothRental - storeCommission
	PreviousBalance int64 `json:"previousBalance"` // Everything strictly before the month start
	MonthlyBalance  int64 `json:"monthlyBalance"`  // monthlyEarnings + previousBalance - totalPayments + totalBalancePayments
}

// TransactionAggregate is the read-side summary shape for a window of
// transactions
type TransactionAggregate struct {
	Transactions  []Transaction `json:"transactions"`
	Count         int64         `json:"count"`
	TotalItems    int64         `json:"totalItems"`    // Sum of item quantities
	TotalSalesTax int64         `json:"totalSalesTax"` // Cents
	TotalAmount   int64         `json:"totalAmount"`   // grandTotal - totalSalesTax, cents
	GrandTotal    int64         `json:"grandTotal"`    // Sum of transaction totals, cents
}
