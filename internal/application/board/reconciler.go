// Package board cuida da reconciliação do quadro de produção: o estado
// autoritativo mora no banco; o quadro só publica intenções de movimento e
// ressincroniza por polling em intervalo fixo, observando também os
// movimentos de outros operadores.
package board

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/jportela/producao-pro/internal/application/authz"
	"github.com/jportela/producao-pro/internal/application/production"
	"github.com/jportela/producao-pro/internal/domain"
	"github.com/jportela/producao-pro/internal/domain/entity"
)

// Card um cartão do quadro.
type Card struct {
	OrderID      string       `json:"order_id"`
	CustomerName string       `json:"customer_name"`
	ProductDesc  string       `json:"product_desc"`
	Quantity     int          `json:"quantity"`
	Stage        entity.Stage `json:"stage"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Snapshot o quadro inteiro em um instante: colunas por etapa (inclusive a
// fila de entrada, etapa none) e contagens derivadas.
type Snapshot struct {
	Columns map[entity.Stage][]Card `json:"columns"`
	Counts  map[entity.Stage]int    `json:"counts"`
	TakenAt time.Time               `json:"taken_at"`
}

// BuildSnapshot monta o quadro a partir dos pedidos em produção,
// ordenando cada coluna por updated_at (mais antigo primeiro).
func BuildSnapshot(orders []*entity.Order) Snapshot {
	snap := Snapshot{
		Columns: map[entity.Stage][]Card{},
		Counts:  map[entity.Stage]int{},
		TakenAt: time.Now(),
	}
	for _, o := range orders {
		card := Card{
			OrderID:      o.ID,
			CustomerName: o.CustomerName,
			ProductDesc:  o.ProductDesc,
			Quantity:     o.Quantity,
			Stage:        o.ProductionStage,
			UpdatedAt:    o.UpdatedAt,
		}
		snap.Columns[o.ProductionStage] = append(snap.Columns[o.ProductionStage], card)
	}
	for stage, cards := range snap.Columns {
		sort.Slice(cards, func(i, j int) bool { return cards[i].UpdatedAt.Before(cards[j].UpdatedAt) })
		snap.Counts[stage] = len(cards)
	}
	return snap
}

// Tipos de mudança detectadas entre dois snapshots.
const (
	ChangeMoved   = "moved"
	ChangeAdded   = "added"
	ChangeRemoved = "removed"
)

// Change uma diferença entre dois snapshots do quadro.
type Change struct {
	Kind    string       `json:"kind"`
	OrderID string       `json:"order_id"`
	From    entity.Stage `json:"from,omitempty"`
	To      entity.Stage `json:"to,omitempty"`
}

// Diff compara dois snapshots e devolve as mudanças, uma por cartão.
// É assim que um operador enxerga os movimentos dos demais.
func Diff(prev, next Snapshot) []Change {
	prevStage := map[string]entity.Stage{}
	for stage, cards := range prev.Columns {
		for _, c := range cards {
			prevStage[c.OrderID] = stage
		}
	}

	var changes []Change
	seen := map[string]bool{}
	for stage, cards := range next.Columns {
		for _, c := range cards {
			seen[c.OrderID] = true
			before, existed := prevStage[c.OrderID]
			switch {
			case !existed:
				changes = append(changes, Change{Kind: ChangeAdded, OrderID: c.OrderID, To: stage})
			case before != stage:
				changes = append(changes, Change{Kind: ChangeMoved, OrderID: c.OrderID, From: before, To: stage})
			}
		}
	}
	for orderID, stage := range prevStage {
		if !seen[orderID] {
			changes = append(changes, Change{Kind: ChangeRemoved, OrderID: orderID, From: stage})
		}
	}
	sort.Slice(changes, func(i, j int) bool { return changes[i].OrderID < changes[j].OrderID })
	return changes
}

// boardReader e cardMover são os contratos mínimos do reconciliador;
// cardMover é satisfeito por *production.MoveStageUseCase.
type boardReader interface {
	ListBoard(ctx context.Context, companyID string) ([]*entity.Order, error)
}

type cardMover interface {
	Move(ctx context.Context, actor authz.Actor, in production.MoveStageInput) (*entity.Order, error)
}

// Reconciler tarefa agendada de poll-and-diff: relê o estado autoritativo em
// intervalo fixo e publica as diferenças para o assinante. Nenhuma chamada
// bloqueia o laço de renderização de quem consome.
type Reconciler struct {
	reader    boardReader
	companyID string
	interval  time.Duration
	onChanges func(Snapshot, []Change)
	log       zerolog.Logger

	last Snapshot
}

// NewReconciler constrói o reconciliador para uma empresa.
func NewReconciler(reader boardReader, companyID string, interval time.Duration,
	onChanges func(Snapshot, []Change), log zerolog.Logger) *Reconciler {
	return &Reconciler{
		reader:    reader,
		companyID: companyID,
		interval:  interval,
		onChanges: onChanges,
		log:       log,
	}
}

// Refresh relê o quadro autoritativo, publica as diferenças contra o último
// snapshot e devolve o novo.
func (r *Reconciler) Refresh(ctx context.Context) (Snapshot, error) {
	orders, err := r.reader.ListBoard(ctx, r.companyID)
	if err != nil {
		return r.last, err
	}
	next := BuildSnapshot(orders)
	if changes := Diff(r.last, next); len(changes) > 0 && r.onChanges != nil {
		r.onChanges(next, changes)
	}
	r.last = next
	return next, nil
}

// Run roda o laço de polling até o contexto ser cancelado. Falha de leitura
// é registrada e tentada de novo no próximo tique — o quadro fica
// eventualmente consistente, nunca travado.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.Debug().Str("company_id", r.companyID).Msg("reconciliador do quadro encerrado")
			return
		case <-ticker.C:
			if _, err := r.Refresh(ctx); err != nil {
				r.log.Error().Err(err).Str("company_id", r.companyID).Msg("falha ao ressincronizar quadro")
			}
		}
	}
}

// MoveCard encaminha a intenção de movimento e reconcilia o resultado:
// sucesso ressincroniza com o estado autoritativo; etapa desatualizada força
// ressincronização imediata antes de devolver o erro, para a superfície
// reverter a posição visual do cartão sobre dados frescos.
func (r *Reconciler) MoveCard(ctx context.Context, mover cardMover, actor authz.Actor, in production.MoveStageInput) (Snapshot, error) {
	_, err := mover.Move(ctx, actor, in)
	if err != nil {
		var stale *domain.StaleStageError
		if errors.As(err, &stale) {
			if _, refreshErr := r.Refresh(ctx); refreshErr != nil {
				r.log.Error().Err(refreshErr).Msg("falha ao ressincronizar após etapa desatualizada")
			}
		}
		return r.last, err
	}
	return r.Refresh(ctx)
}
