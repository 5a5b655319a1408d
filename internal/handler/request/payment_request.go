package request

type SetPaymentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type BulkPaymentStatusRequest struct {
	IDs    []uint64 `json:"ids" binding:"required,min=1"`
	Status string   `json:"status" binding:"required"`
}
