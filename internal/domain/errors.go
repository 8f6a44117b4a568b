package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jportela/producao-pro/internal/domain/entity"
)

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound           = errors.New("recurso não encontrado")
	ErrUserNotFound       = errors.New("usuário não encontrado")
	ErrEmailAlreadyExists = errors.New("o e-mail já está cadastrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("não autorizado")
	ErrForbidden          = errors.New("acesso negado")
	ErrInvalidTransition  = errors.New("transição de etapa inválida")
	ErrConflict           = errors.New("conflito com o estado atual")
)

// StaleStageError indica que a etapa persistida do pedido não é mais a que o
// cliente observou. Carrega a etapa autoritativa para o cliente se ressincronizar
// antes de tentar de novo.
type StaleStageError struct {
	OrderID  string
	Expected entity.Stage // o que o cliente acreditava
	Current  entity.Stage // o que está persistido
}

func (e *StaleStageError) Error() string {
	return fmt.Sprintf("pedido %s: etapa desatualizada (cliente via %q, persistida %q)",
		e.OrderID, e.Expected, e.Current)
}

// GateRejectedError inspeção reprovada: lista os itens do checklist que falharam.
// O registro de qualidade é persistido mesmo assim; o erro existe para a
// superfície exibir os itens reprovados.
type GateRejectedError struct {
	OrderID string
	Failed  []string
}

func (e *GateRejectedError) Error() string {
	return fmt.Sprintf("pedido %s: inspeção reprovada (%s)", e.OrderID, strings.Join(e.Failed, ", "))
}
