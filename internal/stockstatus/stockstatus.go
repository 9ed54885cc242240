// Package stockstatus derives the availability classification of an item
// from its stock count and minimum threshold. The result is never persisted:
// every read path recomputes it so a concurrent stock mutation can never
// leave a stale status behind.
package stockstatus

// Status is the derived availability classification. It is distinct from the
// operator-assigned administrative status label on the item.
type Status string

const (
	Available Status = "Disponible"
	Low       Status = "BajoStock"
	Depleted  Status = "Agotado"
)

// Derive is a pure total function over (stock, minStock).
//
//	stock == 0            → Agotado
//	0 < stock < minStock  → BajoStock
//	stock >= minStock     → Disponible
func Derive(stock, minStock int) Status {
	switch {
	case stock <= 0:
		return Depleted
	case stock < minStock:
		return Low
	default:
		return Available
	}
}
