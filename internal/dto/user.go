package dto

// WipeDataResponse reports how many rows were removed per table by a
// user-data wipe.
type WipeDataResponse struct {
	Success bool             `json:"success"`
	Deleted map[string]int64 `json:"deleted"`
}

// SeedDefaultsResponse reports what the defaults bootstrap created.
type SeedDefaultsResponse struct {
	AccountTypes   int `json:"account_types"`
	PaymentMethods int `json:"payment_methods"`
}
