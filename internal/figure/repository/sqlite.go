package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"figuremaker/internal/figure/models"

	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

var ErrNotFound = errors.New("stored document not found")

// ============================================================
// SQLite Repository
// ============================================================

type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Init запускает миграции.
func (r *Repository) Init(ctx context.Context, migrationsPath string) error {
	if err := r.runMigrations(ctx, migrationsPath); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}

// Save сохраняет документ. Пустой ID означает новую запись; существующая
// запись перезаписывается целиком.
func (r *Repository) Save(ctx context.Context, doc *models.StoredDocument) error {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO documents (id, name, element_count, data)
        VALUES (?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            name = excluded.name,
            element_count = excluded.element_count,
            data = excluded.data,
            updated_at = CURRENT_TIMESTAMP
    `, doc.ID, doc.Name, doc.Elements, string(doc.Data))
	if err != nil {
		return fmt.Errorf("save document %s: %w", doc.ID, err)
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, id string) (*models.StoredDocument, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, name, element_count, data, created_at, updated_at
        FROM documents
        WHERE id = ?
    `, id)

	var d models.StoredDocument
	var data string
	if err := row.Scan(&d.ID, &d.Name, &d.Elements, &data, &d.CreatedAt, &d.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}
	d.Data = []byte(data)
	return &d, nil
}

// List возвращает документы без содержимого, последние изменённые первыми.
func (r *Repository) List(ctx context.Context) ([]models.StoredDocument, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, name, element_count, created_at, updated_at
        FROM documents
        ORDER BY updated_at DESC, id
    `)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	docs := []models.StoredDocument{}
	for rows.Next() {
		var d models.StoredDocument
		if err := rows.Scan(&d.ID, &d.Name, &d.Elements, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete document %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// ============================================================
// Migrations
// ============================================================

func (r *Repository) runMigrations(ctx context.Context, migrationsPath string) error {
	data, err := os.ReadFile(migrationsPath)
	if err != nil {
		return fmt.Errorf("read migration: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, string(data)); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}
	return nil
}

// OpenSQLite открывает sqlite по указанному пути.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout(5000)", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
