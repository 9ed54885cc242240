package worker

// Processes low-stock alert jobs from QueueLowStockEmail: one email per
// recipient, sent through the circuit-breaker-wrapped mailer. Delivery is
// best-effort; a failed send surfaces as an error so the job lands in the DLQ.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Sabogal22/Sistema-de-inventario/internal/infra"

	"github.com/rs/zerolog/log"
)

type LowStockEmailWorker struct {
	mailer *infra.Mailer
}

func NewLowStockEmailWorker(mailer *infra.Mailer) *LowStockEmailWorker {
	return &LowStockEmailWorker{mailer: mailer}
}

func (w *LowStockEmailWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload LowStockEmailPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("lowstock_email: invalid payload")
		return nil // malformed payloads are unrecoverable, don't retry
	}
	if len(payload.Recipients) == 0 {
		log.Warn().Msg("lowstock_email: no recipients, skipping")
		return nil
	}

	subject := fmt.Sprintf("Alerta de stock: %s", payload.ItemName)
	var failed int
	for _, to := range payload.Recipients {
		if err := w.mailer.SendAlert(to, subject, payload.Message); err != nil {
			log.Error().Err(err).Str("to", to).Msg("lowstock_email: send failed")
			failed++
		}
	}
	if failed == len(payload.Recipients) {
		return fmt.Errorf("lowstock_email: all %d sends failed", failed)
	}
	log.Info().
		Str("item", payload.ItemName).
		Int("recipients", len(payload.Recipients)-failed).
		Msg("lowstock_email: alert sent")
	return nil
}
