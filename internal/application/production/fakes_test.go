package production_test

import (
	"context"
	"time"

	"github.com/jportela/producao-pro/internal/application/authz"
	"github.com/jportela/producao-pro/internal/domain"
	"github.com/jportela/producao-pro/internal/domain/entity"
	"github.com/jportela/producao-pro/internal/domain/repository"
)

// Fakes em memória para as portas de persistência e autorização.

type fakeOrders struct {
	byID   map[string]*entity.Order
	logs   []*entity.StageLog
	notifs []*entity.NotificationRecord
}

func newFakeOrders(orders ...*entity.Order) *fakeOrders {
	f := &fakeOrders{byID: map[string]*entity.Order{}}
	for _, o := range orders {
		f.byID[o.ID] = o
	}
	return f
}

func (f *fakeOrders) Create(_ context.Context, o *entity.Order) error {
	f.byID[o.ID] = o
	return nil
}

func (f *fakeOrders) GetByID(_ context.Context, id string) (*entity.Order, error) {
	return f.byID[id], nil
}

func (f *fakeOrders) Update(_ context.Context, o *entity.Order) error {
	f.byID[o.ID] = o
	return nil
}

func (f *fakeOrders) UpdateStatus(_ context.Context, id string, status entity.OrderStatus, stage entity.Stage) error {
	o, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status, o.ProductionStage = status, stage
	return nil
}

func (f *fakeOrders) List(_ context.Context, companyID string, _ repository.OrderFilter) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range f.byID {
		if o.CompanyID == companyID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrders) ListBoard(_ context.Context, companyID string) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range f.byID {
		if o.CompanyID == companyID && o.Status == entity.StatusProducao {
			out = append(out, o)
		}
	}
	return out, nil
}

// ApplyTransition emula o procedimento atômico do banco: atualização
// condicional na etapa esperada + histórico + outbox.
func (f *fakeOrders) ApplyTransition(_ context.Context, in repository.StageTransition) (*entity.Order, error) {
	o, ok := f.byID[in.OrderID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if o.ProductionStage != in.ExpectedStage {
		return nil, &domain.StaleStageError{
			OrderID:  o.ID,
			Expected: in.ExpectedStage,
			Current:  o.ProductionStage,
		}
	}
	o.ProductionStage = in.NewStage
	if in.NewStatus != nil {
		o.Status = *in.NewStatus
	}
	o.UpdatedAt = time.Now()
	log := in.Log
	f.logs = append(f.logs, &log)
	if in.Notification != nil {
		f.notifs = append(f.notifs, in.Notification)
	}
	return o, nil
}

func (f *fakeOrders) ListStageLogs(_ context.Context, orderID string) ([]*entity.StageLog, error) {
	var out []*entity.StageLog
	for _, l := range f.logs {
		if l.OrderID == orderID {
			out = append(out, l)
		}
	}
	return out, nil
}

type fakeQuality struct {
	records []*entity.QualityRecord
}

func (f *fakeQuality) Create(_ context.Context, r *entity.QualityRecord) error {
	f.records = append(f.records, r)
	return nil
}

func (f *fakeQuality) ListByOrder(_ context.Context, orderID string) ([]*entity.QualityRecord, error) {
	var out []*entity.QualityRecord
	for _, r := range f.records {
		if r.OrderID == orderID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeQuality) LatestByOrder(ctx context.Context, orderID string) (*entity.QualityRecord, error) {
	list, _ := f.ListByOrder(ctx, orderID)
	if len(list) == 0 {
		return nil, nil
	}
	return list[len(list)-1], nil
}

type fakeResolver struct {
	allow bool
	err   error
}

func (f *fakeResolver) CanPerform(context.Context, authz.Actor, string, entity.Module, entity.Capability) (bool, error) {
	return f.allow, f.err
}

func permite() *fakeResolver { return &fakeResolver{allow: true} }
func nega() *fakeResolver    { return &fakeResolver{allow: false} }
