package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"figuremaker/internal/figure/codec"
	"figuremaker/internal/figure/document"
	"figuremaker/internal/figure/element"
	"figuremaker/internal/figure/models"

	"github.com/gofiber/fiber/v3/log"
	"github.com/google/uuid"
)

var ErrNoWorkspace = errors.New("workspace not found")

// ============================================================
// Workspace
// ============================================================

// Workspace открытый документ с историей и буфером обмена. Все обращения
// к нему проходят через Edit и выполняются по одному.
type Workspace struct {
	ID string

	mu   sync.Mutex
	doc  *document.Document
	hist *document.History
	clip *document.Clipboard
}

func newWorkspace(elems []element.Element) *Workspace {
	doc := document.New(elems...)
	return &Workspace{
		ID:   uuid.NewString(),
		doc:  doc,
		hist: document.NewHistory(doc),
		clip: &document.Clipboard{},
	}
}

// Session состояние рабочей области, доступное внутри Edit.
type Session struct {
	Doc       *document.Document
	History   *document.History
	Clipboard *document.Clipboard
}

// Edit выполняет fn под блокировкой рабочей области.
func (w *Workspace) Edit(fn func(s Session) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return fn(Session{Doc: w.doc, History: w.hist, Clipboard: w.clip})
}

// Summary снимок счётчиков для ответа клиенту.
func (w *Workspace) Summary() models.Workspace {
	w.mu.Lock()
	defer w.mu.Unlock()
	return models.Workspace{
		ID:        w.ID,
		Elements:  w.doc.Len(),
		CanUndo:   w.hist.CanUndo(),
		CanRedo:   w.hist.CanRedo(),
		Clipboard: w.clip.Len(),
	}
}

// ============================================================
// Manager
// ============================================================

// DocumentStore постоянное хранилище закодированных документов.
type DocumentStore interface {
	Save(ctx context.Context, doc *models.StoredDocument) error
	Get(ctx context.Context, id string) (*models.StoredDocument, error)
	List(ctx context.Context) ([]models.StoredDocument, error)
	Delete(ctx context.Context, id string) error
}

// Manager реестр открытых рабочих областей.
type Manager struct {
	mu    sync.Mutex
	items map[string]*Workspace
	store DocumentStore
}

func NewManager(store DocumentStore) *Manager {
	return &Manager{
		items: make(map[string]*Workspace),
		store: store,
	}
}

// Create открывает новую рабочую область с заданными элементами.
func (m *Manager) Create(elems ...element.Element) *Workspace {
	w := newWorkspace(elems)

	m.mu.Lock()
	m.items[w.ID] = w
	m.mu.Unlock()

	log.Debugf("[WORKSPACE] created %s with %d elements", w.ID, len(elems))
	return w
}

func (m *Manager) Get(id string) (*Workspace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoWorkspace, id)
	}
	return w, nil
}

func (m *Manager) Close(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNoWorkspace, id)
	}
	delete(m.items, id)
	return nil
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// ============================================================
// Persistence
// ============================================================

// Store кодирует документ рабочей области и сохраняет его. Повторное
// сохранение с тем же storeID перезаписывает запись.
func (m *Manager) Store(ctx context.Context, workspaceID, storeID, name string) (*models.StoredDocument, error) {
	w, err := m.Get(workspaceID)
	if err != nil {
		return nil, err
	}

	stored := &models.StoredDocument{ID: storeID, Name: name}
	err = w.Edit(func(s Session) error {
		data, err := codec.Marshal(s.Doc.Elements())
		if err != nil {
			return err
		}
		stored.Data = data
		stored.Elements = s.Doc.Len()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("encode workspace %s: %w", workspaceID, err)
	}

	if err := m.store.Save(ctx, stored); err != nil {
		return nil, err
	}
	log.Infof("[WORKSPACE] stored %s as %s (%d elements)", workspaceID, stored.ID, stored.Elements)
	return stored, nil
}

// Open создаёт рабочую область из сохранённого документа.
func (m *Manager) Open(ctx context.Context, storeID string) (*Workspace, error) {
	stored, err := m.store.Get(ctx, storeID)
	if err != nil {
		return nil, err
	}
	elems, err := codec.Unmarshal(stored.Data)
	if err != nil {
		return nil, fmt.Errorf("decode stored document %s: %w", storeID, err)
	}
	return m.Create(elems...), nil
}

func (m *Manager) Stored(ctx context.Context) ([]models.StoredDocument, error) {
	return m.store.List(ctx)
}

// Discard удаляет сохранённый документ. Открытые из него рабочие области не затрагиваются.
func (m *Manager) Discard(ctx context.Context, storeID string) error {
	if err := m.store.Delete(ctx, storeID); err != nil {
		return err
	}
	log.Infof("[WORKSPACE] stored document %s deleted", storeID)
	return nil
}
