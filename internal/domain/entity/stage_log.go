package entity

import "time"

// Tipos de registro no histórico de etapas.
const (
	LogKindMove     = "move"     // avanço normal na esteira
	LogKindRevert   = "revert"   // correção: volta exatamente uma etapa
	LogKindDispatch = "dispatch" // expedição aprovada pelo Quality Gate
	LogKindForce    = "force"    // force-complete administrativo
)

// StageLog registro imutável de mudança de etapa (append-only).
// Serve de trilha de auditoria e de base para métricas de tempo por etapa.
type StageLog struct {
	ID        string
	OrderID   string
	FromStage Stage
	ToStage   Stage
	Kind      string // ver constantes LogKind*
	ActorID   string // UserID de quem executou a mudança
	Reason    string // obrigatório para revert e force
	CreatedAt time.Time
}
