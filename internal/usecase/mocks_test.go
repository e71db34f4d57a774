package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/ligue-outbound/internal/entity"
	"github.com/xavierca1/ligue-outbound/internal/infra/queue"
)

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindActiveByStatus(ctx context.Context, statuses []entity.LeadStatus) ([]*entity.Lead, error) {
	args := m.Called(ctx, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) UpsertByEmail(ctx context.Context, email string, fields entity.LeadFields) (*entity.Lead, error) {
	args := m.Called(ctx, email, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) UpdateIfStatus(ctx context.Context, id string, expected entity.LeadStatus, fields entity.LeadFields) (bool, error) {
	args := m.Called(ctx, id, expected, fields)
	return args.Bool(0), args.Error(1)
}

func (m *MockLeadRepository) RecordContact(ctx context.Context, id string, channel entity.Channel, step int, at time.Time) (bool, error) {
	args := m.Called(ctx, id, channel, step, at)
	return args.Bool(0), args.Error(1)
}

func (m *MockLeadRepository) CountContactsSince(ctx context.Context, channel entity.Channel, since time.Time) (int, error) {
	args := m.Called(ctx, channel, since)
	return args.Int(0), args.Error(1)
}

// MockCadencePolicyRepository
type MockCadencePolicyRepository struct {
	mock.Mock
}

func (m *MockCadencePolicyRepository) GetByTenant(ctx context.Context, tenantID string) (*entity.CadencePolicy, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CadencePolicy), args.Error(1)
}

func (m *MockCadencePolicyRepository) Upsert(ctx context.Context, policy *entity.CadencePolicy) error {
	args := m.Called(ctx, policy)
	return args.Error(0)
}

func (m *MockCadencePolicyRepository) ListTenantIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockActionPublisher
type MockActionPublisher struct {
	mock.Mock
}

func (m *MockActionPublisher) PublishAction(ctx context.Context, payload queue.ActionPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// memLeadRepo é um store em memória com as mesmas garantias condicionais do Postgres.
type memLeadRepo struct {
	mu    sync.Mutex
	leads map[string]*entity.Lead
	order []string

	// beforeCAS roda antes da checagem de status em UpdateIfStatus,
	// simulando uma escrita concorrente.
	beforeCAS func(id string)
}

func newMemLeadRepo(leads ...*entity.Lead) *memLeadRepo {
	r := &memLeadRepo{leads: map[string]*entity.Lead{}}
	for _, l := range leads {
		r.put(l)
	}
	return r
}

func (r *memLeadRepo) put(l *entity.Lead) {
	if _, ok := r.leads[l.ID]; !ok {
		r.order = append(r.order, l.ID)
	}
	cp := *l
	r.leads[l.ID] = &cp
}

func (r *memLeadRepo) get(id string) *entity.Lead {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.leads[id]
	if !ok {
		return nil
	}
	cp := *l
	return &cp
}

func (r *memLeadRepo) FindByID(_ context.Context, id string) (*entity.Lead, error) {
	if l := r.get(id); l != nil {
		return l, nil
	}
	return nil, entity.ErrLeadNotFound
}

func (r *memLeadRepo) FindActiveByStatus(_ context.Context, statuses []entity.LeadStatus) ([]*entity.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Lead
	for _, id := range r.order {
		l := r.leads[id]
		for _, s := range statuses {
			if l.Status == s {
				cp := *l
				out = append(out, &cp)
				break
			}
		}
	}
	return out, nil
}

func (r *memLeadRepo) UpsertByEmail(_ context.Context, email string, fields entity.LeadFields) (*entity.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var lead *entity.Lead
	for _, l := range r.leads {
		if l.Email == email {
			lead = l
			break
		}
	}
	if lead == nil {
		lead = &entity.Lead{
			ID:        uuid.New().String(),
			Email:     email,
			Status:    entity.LeadStatusNew,
			Score:     50,
			Source:    fields.Source,
			CreatedAt: time.Now().UTC(),
		}
		r.leads[lead.ID] = lead
		r.order = append(r.order, lead.ID)
	}
	applyFields(lead, fields)
	cp := *lead
	return &cp, nil
}

func (r *memLeadRepo) UpdateIfStatus(_ context.Context, id string, expected entity.LeadStatus, fields entity.LeadFields) (bool, error) {
	if r.beforeCAS != nil {
		r.beforeCAS(id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.leads[id]
	if !ok || l.Status != expected {
		return false, nil
	}
	applyFields(l, fields)
	return true, nil
}

func (r *memLeadRepo) RecordContact(_ context.Context, id string, channel entity.Channel, step int, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.leads[id]
	if !ok || !l.Status.IsActive() {
		return false, nil
	}
	t := at
	switch channel {
	case entity.ChannelEmail:
		if l.EmailCount != step-1 {
			return false, nil
		}
		l.EmailCount++
		l.LastEmailAt = &t
	case entity.ChannelCall:
		if l.CallCount != step-1 {
			return false, nil
		}
		l.CallCount++
		l.LastCallAt = &t
	}
	l.LastContact = &t
	l.Status = entity.LeadStatusContacted
	return true, nil
}

func (r *memLeadRepo) CountContactsSince(_ context.Context, channel entity.Channel, since time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, l := range r.leads {
		last := l.LastEmailAt
		if channel == entity.ChannelCall {
			last = l.LastCallAt
		}
		if last != nil && !last.Before(since) {
			n++
		}
	}
	return n, nil
}

func applyFields(l *entity.Lead, f entity.LeadFields) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&l.Name, f.Name)
	set(&l.Company, f.Company)
	set(&l.Role, f.Role)
	set(&l.Phone, f.Phone)
	set(&l.Location, f.Location)
	set(&l.CompanySize, f.CompanySize)
	if f.Score != nil {
		l.Score = *f.Score
	}
	if f.Status != "" {
		l.Status = f.Status
	}
	if f.MeetingTime != nil {
		mt := *f.MeetingTime
		l.MeetingTime = &mt
	}
}

type memPolicyRepo struct {
	policies map[string]*entity.CadencePolicy
}

func newMemPolicyRepo(policies ...*entity.CadencePolicy) *memPolicyRepo {
	r := &memPolicyRepo{policies: map[string]*entity.CadencePolicy{}}
	for _, p := range policies {
		r.policies[p.TenantID] = p
	}
	return r
}

func (r *memPolicyRepo) GetByTenant(_ context.Context, tenantID string) (*entity.CadencePolicy, error) {
	p, ok := r.policies[tenantID]
	if !ok {
		return nil, entity.ErrPolicyNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memPolicyRepo) Upsert(_ context.Context, p *entity.CadencePolicy) error {
	cp := *p
	r.policies[p.TenantID] = &cp
	return nil
}

func (r *memPolicyRepo) ListTenantIDs(_ context.Context) ([]string, error) {
	ids := make([]string, 0, len(r.policies))
	for id := range r.policies {
		ids = append(ids, id)
	}
	return ids, nil
}

var testEpoch = time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)

func day(n int) time.Time {
	return testEpoch.Add(time.Duration(n) * 24 * time.Hour)
}

func newTestLead(id, email string) *entity.Lead {
	return &entity.Lead{
		ID:        id,
		Email:     email,
		Status:    entity.LeadStatusNew,
		Score:     50,
		Source:    "manual",
		CreatedAt: testEpoch,
		UpdatedAt: testEpoch,
	}
}
