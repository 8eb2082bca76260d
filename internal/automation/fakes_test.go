package automation

import (
	"context"
	"sync"
	"time"

	"realty_leads_backend/internal/leads/domain"
	"realty_leads_backend/platform/logger"

	"github.com/google/uuid"
)

func newTestEngine(store Store, notifier Notifier, social SocialPoster) *Engine {
	return NewEngine(store, notifier, social, logger.New("development"))
}

func strPtr(s string) *string { return &s }

type trackedEvent struct {
	leadID  uuid.UUID
	event   string
	payload any
}

type fakeStore struct {
	mu sync.Mutex

	batch  []domain.Lead
	hot    []domain.Lead
	cohort []domain.Lead

	stats    domain.DailyStats
	statsErr error
	statsDay time.Time

	batchStatus string
	batchMinAge time.Duration
	batchMaxAge time.Duration
	batchLimit  int

	statusUpdates map[uuid.UUID]string
	statusErr     map[uuid.UUID]error
	tracking      []trackedEvent
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		statusUpdates: make(map[uuid.UUID]string),
		statusErr:     make(map[uuid.UUID]error),
	}
}

// ListByStatusAndAge applies the same predicate as the SQL query so tests can
// exercise the selection window against concrete created_at values. Status
// flips recorded through UpdateStatus are honored.
func (s *fakeStore) ListByStatusAndAge(_ context.Context, status string, minAge, maxAge time.Duration, limit int) ([]domain.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batchStatus, s.batchMinAge, s.batchMaxAge, s.batchLimit = status, minAge, maxAge, limit

	now := time.Now()
	var out []domain.Lead
	for _, l := range s.batch {
		current := l.Status
		if updated, ok := s.statusUpdates[l.ID]; ok {
			current = updated
		}
		age := now.Sub(l.CreatedAt)
		if current != status || age <= minAge || age >= maxAge {
			continue
		}
		out = append(out, l)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *fakeStore) ListHotRecent(context.Context, int, string, time.Duration) ([]domain.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hot, nil
}

func (s *fakeStore) ListMarketUpdateCohort(context.Context, time.Duration, int) ([]domain.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cohort, nil
}

func (s *fakeStore) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.statusErr[id]; err != nil {
		return err
	}
	s.statusUpdates[id] = status
	return nil
}

func (s *fakeStore) AppendTrackingEvent(_ context.Context, leadID uuid.UUID, event string, payload any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tracking = append(s.tracking, trackedEvent{leadID: leadID, event: event, payload: payload})
	return nil
}

func (s *fakeStore) AggregateDailyStats(_ context.Context, day time.Time) (domain.DailyStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statsDay = day
	if s.statsErr != nil {
		return domain.DailyStats{}, s.statsErr
	}
	return s.stats, nil
}

func (s *fakeStore) trackedEvents(event string) []uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []uuid.UUID
	for _, t := range s.tracking {
		if t.event == event {
			out = append(out, t.leadID)
		}
	}
	return out
}

func (s *fakeStore) trackedPayload(leadID uuid.UUID, event string) any {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tracking {
		if t.leadID == leadID && t.event == event {
			return t.payload
		}
	}
	return nil
}

type fakeNotifier struct {
	mu sync.Mutex

	newLead   []uuid.UUID
	followUps []uuid.UUID
	urgent    []uuid.UUID
	market    []uuid.UUID

	followErr error
	urgentErr map[uuid.UUID]error
	marketErr map[uuid.UUID]error
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{
		urgentErr: make(map[uuid.UUID]error),
		marketErr: make(map[uuid.UUID]error),
	}
}

func (n *fakeNotifier) NotifyNewLead(_ context.Context, lead domain.Lead) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.newLead = append(n.newLead, lead.ID)
}

func (n *fakeNotifier) SendFollowUpSMS(_ context.Context, lead domain.Lead) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.followErr != nil {
		return n.followErr
	}
	n.followUps = append(n.followUps, lead.ID)
	return nil
}

func (n *fakeNotifier) SendUrgentAlert(_ context.Context, lead domain.Lead) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.urgentErr[lead.ID]; err != nil {
		return err
	}
	n.urgent = append(n.urgent, lead.ID)
	return nil
}

func (n *fakeNotifier) SendMarketUpdateSMS(_ context.Context, lead domain.Lead, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.marketErr[lead.ID]; err != nil {
		return err
	}
	n.market = append(n.market, lead.ID)
	return nil
}

type fakeSocial struct {
	mu       sync.Mutex
	messages []string
	err      error
}

func (f *fakeSocial) PostMarketUpdate(_ context.Context, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, message)
	return nil
}
