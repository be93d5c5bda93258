package application

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/webcash/walletd/internal/core/domain"
	"github.com/webcash/walletd/internal/core/ports"
	"github.com/webcash/walletd/pkg/webcash"
)

// ReplacementInput pairs an unspent output with the secret that proves
// ownership of it. The secret must be the one the output was recorded
// against.
type ReplacementInput struct {
	Output domain.Output
	Secret domain.Secret
}

// ReplacementOutput names a secret the wallet controls and the amount to
// bind to it on the server.
type ReplacementOutput struct {
	Secret domain.Secret
	Amount webcash.Amount
}

// CreatedOutput reports one output recorded locally after a successful
// replacement.
type CreatedOutput struct {
	Secret   domain.Secret
	OutputID int64
}

// ReplaceWebcash atomically exchanges the input tokens for the output
// tokens on the server. Inputs and outputs must conserve value exactly.
// Once the server confirms, the local store is updated on a best-effort
// basis: a row that fails to update is logged and skipped, never allowed
// to mask the fact that the exchange already happened.
func (s *service) ReplaceWebcash(
	ctx context.Context, inputs []ReplacementInput, outputs []ReplacementOutput,
) ([]CreatedOutput, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.replaceWebcash(ctx, time.Now(), inputs, outputs)
}

func (s *service) replaceWebcash(
	ctx context.Context, now time.Time,
	inputs []ReplacementInput, outputs []ReplacementOutput,
) ([]CreatedOutput, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("replacement requires at least one input")
	}
	if len(outputs) == 0 {
		return nil, fmt.Errorf("replacement requires at least one output")
	}

	var totalIn webcash.Amount
	webcashes := make([]string, 0, len(inputs))
	for _, in := range inputs {
		if !in.Output.HasSecret() || in.Secret.Value == "" {
			return nil, fmt.Errorf("cannot replace output %d without its secret", in.Output.ID)
		}
		if in.Output.Spent {
			return nil, fmt.Errorf("output %d is already spent", in.Output.ID)
		}
		if in.Output.Amount < 1 {
			return nil, fmt.Errorf(
				"output %d has invalid amount %s", in.Output.ID, in.Output.Amount,
			)
		}
		token := webcash.SecretWebcash{Secret: in.Secret.Value, Amount: in.Output.Amount}
		webcashes = append(webcashes, token.String())
		totalIn += in.Output.Amount
	}

	var totalOut webcash.Amount
	newWebcashes := make([]string, 0, len(outputs))
	for _, out := range outputs {
		if out.Secret.Value == "" {
			return nil, fmt.Errorf("replacement output is missing its secret")
		}
		if out.Amount < 1 {
			return nil, fmt.Errorf("replacement output has invalid amount %s", out.Amount)
		}
		token := webcash.SecretWebcash{Secret: out.Secret.Value, Amount: out.Amount}
		newWebcashes = append(newWebcashes, token.String())
		totalOut += out.Amount
	}

	if totalIn != totalOut {
		return nil, fmt.Errorf(
			"unbalanced replacement: inputs total %s, outputs total %s", totalIn, totalOut,
		)
	}

	if err := s.exchange.Replace(ctx, ports.ReplaceRequest{
		Webcashes:    webcashes,
		NewWebcashes: newWebcashes,
		Legalese:     ports.Legalese{Terms: true},
	}); err != nil {
		return nil, err
	}

	// From here the server has already performed the exchange. Record as
	// much of it as possible, whatever errors the store throws.
	for _, in := range inputs {
		if err := s.repo.Outputs().MarkSpent(ctx, in.Output.ID); err != nil {
			log.WithError(err).Errorf("unable to mark output %d as spent", in.Output.ID)
		}
	}

	created := make([]CreatedOutput, 0, len(outputs))
	for _, out := range outputs {
		token := webcash.SecretWebcash{Secret: out.Secret.Value, Amount: out.Amount}
		pub := token.Public()
		id, err := s.repo.Outputs().Add(ctx, domain.Output{
			Timestamp: now.Unix(),
			Hash:      pub.Hash,
			SecretID:  out.Secret.ID,
			Amount:    out.Amount,
		})
		if err != nil {
			log.WithError(err).Errorf("unable to record replacement output %s", pub)
			continue
		}
		created = append(created, CreatedOutput{Secret: out.Secret, OutputID: id})
	}
	return created, nil
}
