package event

// Outbox topics.
const (
	TopicBatchProcessed       = "royalty.earnings.batch_processed"
	TopicPaymentStatusChanged = "royalty.payment.status_changed"
)

// BatchProcessedEvent is emitted after an earnings upload has been ingested
// and reconciled. Topic: royalty.earnings.batch_processed
type BatchProcessedEvent struct {
	BatchID        string `json:"batch_id"`
	Filename       string `json:"filename"`
	RowsImported   int    `json:"rows_imported"`
	RowsSkipped    int    `json:"rows_skipped"`
	UsersProcessed int    `json:"users_processed"`
}

// PaymentStatusChangedEvent is emitted on every payment request transition.
// Topic: royalty.payment.status_changed
type PaymentStatusChangedEvent struct {
	PaymentRequestID uint64 `json:"payment_request_id"`
	UserID           uint64 `json:"user_id"`
	OldStatus        string `json:"old_status"`
	NewStatus        string `json:"new_status"`
	Amount           string `json:"amount"` // Decimal string
}
