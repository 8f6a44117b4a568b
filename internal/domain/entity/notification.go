package entity

import "time"

// Canal e modos de envio de notificações.
const (
	ChannelWhatsApp = "whatsapp"

	SendKindAutomatic = "automatic" // disparada por transição de etapa
	SendKindManual    = "manual"    // reenvio solicitado por um usuário
)

// NotificationStatus situação de um registro na fila de saída (outbox).
type NotificationStatus string

const (
	NotificationPending NotificationStatus = "pending"
	NotificationSent    NotificationStatus = "sent"
	NotificationFailed  NotificationStatus = "failed"
)

// NotificationRecord uma tentativa de mensagem ao cliente. Linha de outbox:
// criada junto com a transação que a originou e consumida por um worker.
// Append-only; só o resultado do envio é preenchido depois da criação.
type NotificationRecord struct {
	ID            string
	OrderID       string
	CompanyID     string
	Event         string // etapa que disparou ("corte", ...) ou "dispatched"
	Channel       string
	Recipient     string
	Payload       string // mensagem renderizada do template
	Response      string // corpo devolvido pelo provedor
	HTTPStatus    *int   // nil enquanto não houve resposta HTTP (em voo ou falha de transporte)
	SendKind      string
	Status        NotificationStatus
	Attempts      int
	NextAttemptAt *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
