package app_test

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"

	"visitlog/internal/visitors/domain/entities"
	"visitlog/internal/visitors/ports/repositories"
)

var errInjected = errors.New("injected storage failure")

type memState struct {
	visitors  map[string]entities.Visitor
	documents map[string]entities.DocumentRecord
}

func (s memState) clone() memState {
	return memState{visitors: maps.Clone(s.visitors), documents: maps.Clone(s.documents)}
}

// memStore хранит состояние в памяти и применяет изменения транзакции только при успехе.
type memStore struct {
	mu      sync.Mutex
	state   memState
	ops     []string
	failOn  string
	txCount int
}

func newMemStore() *memStore {
	return &memStore{state: memState{
		visitors:  map[string]entities.Visitor{},
		documents: map[string]entities.DocumentRecord{},
	}}
}

func (m *memStore) RunInTx(ctx context.Context, fn func(ctx context.Context, repos repositories.TxRepositories) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.txCount++
	tx := &memTx{store: m, state: m.state.clone()}
	if err := fn(ctx, tx); err != nil {
		if entities.IsDomainError(err) {
			return err
		}
		return fmt.Errorf("%w: %w", entities.ErrTransactionFailed, err)
	}
	m.state = tx.state
	return nil
}

func (m *memStore) snapshot() *memTx {
	m.mu.Lock()
	defer m.mu.Unlock()
	return &memTx{store: &memStore{}, state: m.state.clone()}
}

func (m *memStore) visitor(id string) (entities.Visitor, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.state.visitors[id]
	return v, ok
}

func (m *memStore) documentsOf(visitorID string) []entities.DocumentRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entities.DocumentRecord
	for _, d := range m.state.documents {
		if d.VisitorID == visitorID {
			out = append(out, d)
		}
	}
	return out
}

func (m *memStore) activeDocumentOf(visitorID string) (entities.DocumentRecord, bool) {
	for _, d := range m.documentsOf(visitorID) {
		if d.DeletedAt == nil {
			return d, true
		}
	}
	return entities.DocumentRecord{}, false
}

func (m *memStore) resetOps() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = nil
}

type memTx struct {
	store *memStore
	state memState
}

func (tx *memTx) Visitors() repositories.VisitorRepository  { return memVisitors{tx} }
func (tx *memTx) Documents() repositories.DocumentRepository { return memDocuments{tx} }

func (tx *memTx) record(op string) error {
	tx.store.ops = append(tx.store.ops, op)
	if tx.store.failOn == op {
		return errInjected
	}
	return nil
}

type memVisitors struct{ tx *memTx }

func (r memVisitors) Create(_ context.Context, v *entities.Visitor, actorID string) (string, error) {
	if err := r.tx.record("visitors.Create"); err != nil {
		return "", err
	}
	stored := *v
	stored.ID = uuid.NewString()
	stored.CreatedBy, stored.UpdatedBy = &actorID, &actorID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.tx.state.visitors[stored.ID] = stored
	return stored.ID, nil
}

func (r memVisitors) active(id string) (entities.Visitor, error) {
	v, ok := r.tx.state.visitors[id]
	if !ok || v.DeletedAt != nil {
		return entities.Visitor{}, entities.ErrVisitorNotFound
	}
	return v, nil
}

func (r memVisitors) LockActive(_ context.Context, id string) error {
	if err := r.tx.record("visitors.LockActive"); err != nil {
		return err
	}
	_, err := r.active(id)
	return err
}

func (r memVisitors) Update(_ context.Context, v *entities.Visitor, actorID string) error {
	if err := r.tx.record("visitors.Update"); err != nil {
		return err
	}
	current, err := r.active(v.ID)
	if err != nil {
		return err
	}
	updated := *v
	updated.CreatedBy, updated.CreatedAt = current.CreatedBy, current.CreatedAt
	updated.UpdatedBy, updated.UpdatedAt = &actorID, time.Now()
	r.tx.state.visitors[v.ID] = updated
	return nil
}

func (r memVisitors) StampDeleted(_ context.Context, id, actorID string) error {
	if err := r.tx.record("visitors.StampDeleted"); err != nil {
		return err
	}
	v, err := r.active(id)
	if err != nil {
		return err
	}
	v.DeletedBy = &actorID
	r.tx.state.visitors[id] = v
	return nil
}

func (r memVisitors) SoftDelete(_ context.Context, id string) error {
	if err := r.tx.record("visitors.SoftDelete"); err != nil {
		return err
	}
	v, err := r.active(id)
	if err != nil {
		return err
	}
	now := time.Now()
	v.DeletedAt = &now
	r.tx.state.visitors[id] = v
	return nil
}

func (r memVisitors) GetByID(_ context.Context, id string) (*entities.Visitor, error) {
	v, err := r.active(id)
	if err != nil {
		return nil, nil
	}
	return &v, nil
}

type memDocuments struct{ tx *memTx }

func (r memDocuments) activeOf(visitorID string) (entities.DocumentRecord, bool) {
	for _, d := range r.tx.state.documents {
		if d.VisitorID == visitorID && d.DeletedAt == nil {
			return d, true
		}
	}
	return entities.DocumentRecord{}, false
}

func (r memDocuments) Create(_ context.Context, visitorID string, doc entities.Document, actorID string) (string, error) {
	if err := r.tx.record("documents.Create"); err != nil {
		return "", err
	}
	if _, exists := r.activeOf(visitorID); exists {
		return "", errors.New("duplicate key value violates unique constraint")
	}
	id := uuid.NewString()
	r.tx.state.documents[id] = entities.DocumentRecord{
		ID: id, VisitorID: visitorID, Document: doc, CreatedBy: &actorID, CreatedAt: time.Now(),
	}
	return id, nil
}

func (r memDocuments) LockActiveByVisitor(_ context.Context, visitorID string) (*entities.DocumentRef, error) {
	if err := r.tx.record("documents.LockActiveByVisitor"); err != nil {
		return nil, err
	}
	d, ok := r.activeOf(visitorID)
	if !ok {
		return nil, nil
	}
	return &entities.DocumentRef{ID: d.ID, Type: d.Document.Type()}, nil
}

func (r memDocuments) Update(_ context.Context, id string, doc entities.Document) error {
	if err := r.tx.record("documents.Update"); err != nil {
		return err
	}
	d, ok := r.tx.state.documents[id]
	if !ok || d.DeletedAt != nil {
		return entities.ErrDocumentNotFound
	}
	d.Document = doc
	r.tx.state.documents[id] = d
	return nil
}

func (r memDocuments) Delete(_ context.Context, id string) error {
	if err := r.tx.record("documents.Delete"); err != nil {
		return err
	}
	if _, ok := r.tx.state.documents[id]; !ok {
		return entities.ErrDocumentNotFound
	}
	delete(r.tx.state.documents, id)
	return nil
}

func (r memDocuments) StampDeleted(_ context.Context, id, actorID string) error {
	if err := r.tx.record("documents.StampDeleted"); err != nil {
		return err
	}
	d, ok := r.tx.state.documents[id]
	if !ok || d.DeletedAt != nil {
		return entities.ErrDocumentNotFound
	}
	d.DeletedBy = &actorID
	r.tx.state.documents[id] = d
	return nil
}

func (r memDocuments) SoftDelete(_ context.Context, id string) error {
	if err := r.tx.record("documents.SoftDelete"); err != nil {
		return err
	}
	d, ok := r.tx.state.documents[id]
	if !ok || d.DeletedAt != nil {
		return entities.ErrDocumentNotFound
	}
	now := time.Now()
	d.DeletedAt = &now
	r.tx.state.documents[id] = d
	return nil
}

func (r memDocuments) GetActiveByVisitor(_ context.Context, visitorID string) (*entities.DocumentRecord, error) {
	d, ok := r.activeOf(visitorID)
	if !ok {
		return nil, nil
	}
	return &d, nil
}

// liveReads читает зафиксированное состояние на момент каждого вызова.
type liveReads struct{ store *memStore }

func (m *memStore) readRepos() liveReads { return liveReads{store: m} }

func (r liveReads) Visitors() repositories.VisitorRepository {
	return liveVisitors{store: r.store}
}

func (r liveReads) Documents() repositories.DocumentRepository {
	return liveDocuments{store: r.store}
}

type liveVisitors struct {
	memVisitors
	store *memStore
}

func (r liveVisitors) GetByID(ctx context.Context, id string) (*entities.Visitor, error) {
	return r.store.snapshot().Visitors().GetByID(ctx, id)
}

type liveDocuments struct {
	memDocuments
	store *memStore
}

func (r liveDocuments) GetActiveByVisitor(ctx context.Context, visitorID string) (*entities.DocumentRecord, error) {
	return r.store.snapshot().Documents().GetActiveByVisitor(ctx, visitorID)
}
