package dto

// UpdatePrecisionRequest changes one or more system precisions. Omitted fields keep their value.
type UpdatePrecisionRequest struct {
	AmountDecimals   *int32 `json:"amountDecimals" binding:"omitempty,min=0,max=8"`
	QuantityDecimals *int32 `json:"quantityDecimals" binding:"omitempty,min=0,max=8"`
	RateDecimals     *int32 `json:"rateDecimals" binding:"omitempty,min=0,max=8"`
}
