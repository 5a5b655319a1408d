package model

// AllModels returns every model subject to schema migration.
// New tables only need to be added here, not in main.go.
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Release{},
		&SplitShareAgreement{},
		&PaymentMethod{},
		&Administrator{},
		&EarningsRecord{},
		&UploadBatch{},
		&RoyaltyLedgerEntry{},
		&PaymentRequest{},
		&OutboxMessage{},
	}
}
