package models

// ============================================================
// Stored Document Model
// ============================================================

// StoredDocument закодированный документ в хранилище. Data содержит файл
// документа в JSON и в списки не попадает.
type StoredDocument struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Elements  int    `json:"elements"`
	Data      []byte `json:"-"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Workspace краткое состояние открытого документа.
type Workspace struct {
	ID        string `json:"id"`
	Elements  int    `json:"elements"`
	CanUndo   bool   `json:"can_undo"`
	CanRedo   bool   `json:"can_redo"`
	Clipboard int    `json:"clipboard"`
}
