package entity

import "time"

// QualityRecord resultado de uma tentativa de inspeção de qualidade.
// Um pedido pode acumular vários registros (reprovações reinspecionadas);
// o mais recente determina o status de inspeção exibido.
type QualityRecord struct {
	ID           string
	OrderID      string
	OperatorID   string
	Checklist    map[string]bool
	TrackingCode string
	Carrier      string
	Approved     bool // derivado: true sse todos os itens do checklist são true
	Notes        string
	CreatedAt    time.Time
}

// FailedItems devolve os itens do checklist reprovados, para exibição inline.
func (q *QualityRecord) FailedItems() []string {
	var failed []string
	for item, ok := range q.Checklist {
		if !ok {
			failed = append(failed, item)
		}
	}
	return failed
}
