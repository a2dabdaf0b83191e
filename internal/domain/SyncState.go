package domain

import "time"

// SyncState registra o ponto de avanço da sincronização de uma aba da planilha.
// Avança apenas após confirmação de escrita e nunca retrocede, exceto por reset explícito.
type SyncState struct {
	ID         int64     `json:"id"`
	SheetName  string    `json:"sheet_name"`
	LastRowKey string    `json:"last_row_key"`
	RowCount   int       `json:"row_count"`
	SyncedAt   time.Time `json:"synced_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
