package dto

// CreateVendorRequest represents the API request for creating a vendor
type CreateVendorRequest struct {
	ID       int64  `json:"id" binding:"required"`
	Name     string `json:"name" binding:"required"`
	UserName string `json:"userName" binding:"required"`
}

// VendorResponse represents a vendor in API responses
type VendorResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Balance string `json:"balance"`
}

// SettingRequest represents the API request for writing a settings key
type SettingRequest struct {
	Value string `json:"value" binding:"required"`
}

// SettingResponse represents a settings key/value pair in API responses
type SettingResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
