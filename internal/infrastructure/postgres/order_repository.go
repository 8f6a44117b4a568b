package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jportela/producao-pro/internal/domain"
	"github.com/jportela/producao-pro/internal/domain/entity"
	"github.com/jportela/producao-pro/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, company_id, customer_name, customer_phone, product_desc, size, color,
	quantity, unit_price, status, production_stage, created_by, created_at, updated_at`

// OrderRepo implementação do porto OrderRepository sobre PostgreSQL.
// Recebe o pool (e não um Querier) porque ApplyTransition abre transação própria.
type OrderRepo struct {
	pool *pgxpool.Pool
}

// NewOrderRepository constrói o adaptador de persistência de pedidos.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepo {
	return &OrderRepo{pool: pool}
}

// Create persiste um novo pedido.
func (r *OrderRepo) Create(ctx context.Context, order *entity.Order) error {
	query := `
		INSERT INTO orders (id, company_id, customer_name, customer_phone, product_desc, size, color,
			quantity, unit_price, status, production_stage, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.pool.Exec(ctx, query,
		order.ID, order.CompanyID, order.CustomerName, order.CustomerPhone, order.ProductDesc,
		order.Size, order.Color, order.Quantity, order.UnitPrice, order.Status,
		order.ProductionStage, order.CreatedBy, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID obtém um pedido por ID. (nil, nil) se não existe.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	o, err := scanOrder(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// Update atualiza os atributos do pedido (não mexe em status nem etapa).
func (r *OrderRepo) Update(ctx context.Context, order *entity.Order) error {
	query := `
		UPDATE orders
		SET customer_name = $1, customer_phone = $2, product_desc = $3, size = $4, color = $5,
			quantity = $6, unit_price = $7, updated_at = now()
		WHERE id = $8`
	tag, err := r.pool.Exec(ctx, query,
		order.CustomerName, order.CustomerPhone, order.ProductDesc, order.Size, order.Color,
		order.Quantity, order.UnitPrice, order.ID,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus atualiza status e etapa juntos (ex.: entrar em produção zera ou
// define a etapa; cancelar limpa a etapa).
func (r *OrderRepo) UpdateStatus(ctx context.Context, id string, status entity.OrderStatus, stage entity.Stage) error {
	query := `UPDATE orders SET status = $1, production_stage = $2, updated_at = now() WHERE id = $3`
	tag, err := r.pool.Exec(ctx, query, status, stage, id)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista os pedidos da empresa com filtro opcional por status.
func (r *OrderRepo) List(ctx context.Context, companyID string, f repository.OrderFilter) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE company_id = $1`
	args := []any{companyID}
	if f.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", len(args)+1)
		args = append(args, f.Status)
	}
	query += " ORDER BY created_at DESC"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, f.Limit, f.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	return collectOrders(rows)
}

// ListBoard pedidos em produção da empresa, ordenados por updated_at, para o
// quadro por etapa.
func (r *OrderRepo) ListBoard(ctx context.Context, companyID string) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
		WHERE company_id = $1 AND status = 'producao'
		ORDER BY updated_at ASC`
	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list board: %w", err)
	}
	defer rows.Close()
	return collectOrders(rows)
}

// ApplyTransition executa o procedimento atômico de mudança de etapa:
// UPDATE condicional no pedido + registro no histórico + linha de outbox,
// em uma única transação. A condição production_stage = expected no UPDATE
// é o que garante que dois avanços concorrentes não pulem etapa: o segundo
// encontra zero linhas e recebe StaleStageError com a etapa autoritativa.
func (r *OrderRepo) ApplyTransition(ctx context.Context, in repository.StageTransition) (*entity.Order, error) {
	var updated *entity.Order
	err := runTx(ctx, r.pool, func(tx pgx.Tx) error {
		var newStatus *string
		if in.NewStatus != nil {
			s := string(*in.NewStatus)
			newStatus = &s
		}
		tag, err := tx.Exec(ctx, `
			UPDATE orders
			SET production_stage = $1, status = COALESCE($2, status), updated_at = now()
			WHERE id = $3 AND company_id = $4 AND production_stage = $5`,
			in.NewStage, newStatus, in.OrderID, in.CompanyID, in.ExpectedStage,
		)
		if err != nil {
			return fmt.Errorf("update stage: %w", err)
		}
		if tag.RowsAffected() == 0 {
			// Ou o pedido sumiu, ou outra requisição mudou a etapa antes.
			var current entity.Stage
			err := tx.QueryRow(ctx,
				`SELECT production_stage FROM orders WHERE id = $1 AND company_id = $2`,
				in.OrderID, in.CompanyID,
			).Scan(&current)
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrNotFound
			}
			if err != nil {
				return fmt.Errorf("read current stage: %w", err)
			}
			return &domain.StaleStageError{OrderID: in.OrderID, Expected: in.ExpectedStage, Current: current}
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO order_stage_logs (id, order_id, from_stage, to_stage, kind, actor_id, reason, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, now())`,
			in.Log.ID, in.Log.OrderID, in.Log.FromStage, in.Log.ToStage, in.Log.Kind, in.Log.ActorID, in.Log.Reason,
		)
		if err != nil {
			return fmt.Errorf("insert stage log: %w", err)
		}

		if n := in.Notification; n != nil {
			_, err = tx.Exec(ctx, `
				INSERT INTO notification_outbox (id, order_id, company_id, event, channel, recipient,
					payload, send_kind, status, attempts, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 0, now(), now())`,
				n.ID, n.OrderID, n.CompanyID, n.Event, n.Channel, n.Recipient,
				n.Payload, n.SendKind, entity.NotificationPending,
			)
			if err != nil {
				return fmt.Errorf("insert outbox: %w", err)
			}
		}

		o, err := scanOrder(tx.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, in.OrderID))
		if err != nil {
			return fmt.Errorf("reload order: %w", err)
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ListStageLogs histórico de etapas do pedido, em ordem cronológica.
func (r *OrderRepo) ListStageLogs(ctx context.Context, orderID string) ([]*entity.StageLog, error) {
	query := `
		SELECT id, order_id, from_stage, to_stage, kind, actor_id, reason, created_at
		FROM order_stage_logs WHERE order_id = $1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list stage logs: %w", err)
	}
	defer rows.Close()

	var logs []*entity.StageLog
	for rows.Next() {
		var l entity.StageLog
		if err := rows.Scan(&l.ID, &l.OrderID, &l.FromStage, &l.ToStage, &l.Kind, &l.ActorID, &l.Reason, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stage log: %w", err)
		}
		logs = append(logs, &l)
	}
	return logs, rows.Err()
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(
		&o.ID, &o.CompanyID, &o.CustomerName, &o.CustomerPhone, &o.ProductDesc, &o.Size, &o.Color,
		&o.Quantity, &o.UnitPrice, &o.Status, &o.ProductionStage, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func collectOrders(rows pgx.Rows) ([]*entity.Order, error) {
	var orders []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
