package ports

import "context"

// ReplaceRequest is the atomic exchange submitted to the exchange
// service: the listed webcashes are invalidated and the new webcashes
// become spendable, with equal totals.
type ReplaceRequest struct {
	Webcashes    []string `json:"webcashes"`
	NewWebcashes []string `json:"new_webcashes"`
	Legalese     Legalese `json:"legalese"`
}

// Legalese marks acceptance of the terms of service. The exchange service
// rejects requests without it.
type Legalese struct {
	Terms bool `json:"terms"`
}

// ExchangeService is the external collaborator executing replacements. A
// nil return means the service explicitly confirmed the exchange; any
// error means the exchange must be assumed to not have happened.
type ExchangeService interface {
	Replace(ctx context.Context, req ReplaceRequest) error
}
