package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/campaign-tracker-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-tracker-api/internal/domain"
)

const (
	syncStatesTable = "sync_states ss"
)

type SyncStateRepository interface {
	GetBySheetName(sheetName string) (*domain.SyncState, error)
	SaveOrUpdate(state *domain.SyncState) error
	Reset(sheetName string) error
}

type syncStateRepository struct {
	conn *postgres.Connection
}

func NewSyncStateRepository(conn *postgres.Connection) SyncStateRepository {
	return &syncStateRepository{
		conn: conn,
	}
}

func (r *syncStateRepository) GetBySheetName(sheetName string) (*domain.SyncState, error) {
	query, args, err := squirrel.
		Select("ss.id, ss.sheet_name, ss.last_row_key, ss.row_count, ss.synced_at, ss.created_at, ss.updated_at").
		From(syncStatesTable).
		Where(squirrel.Eq{"ss.sheet_name": sheetName}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	state := &domain.SyncState{}
	row := r.conn.QueryRow(query, args...)
	err = row.Scan(
		&state.ID,
		&state.SheetName,
		&state.LastRowKey,
		&state.RowCount,
		&state.SyncedAt,
		&state.CreatedAt,
		&state.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear estado de sincronização: %w", err)
	}

	return state, nil
}

// SaveOrUpdate avança a marca d'água da aba. O WHERE do upsert garante que
// o estado nunca retroceda para um synced_at mais antigo.
func (r *syncStateRepository) SaveOrUpdate(state *domain.SyncState) error {
	query := squirrel.StatementBuilder.
		Insert("sync_states").
		Columns("sheet_name", "last_row_key", "row_count", "synced_at").
		Values(
			state.SheetName,
			state.LastRowKey,
			state.RowCount,
			state.SyncedAt,
		).
		Suffix(`
			ON CONFLICT (sheet_name) DO UPDATE SET
				last_row_key = EXCLUDED.last_row_key,
				row_count = EXCLUDED.row_count,
				synced_at = EXCLUDED.synced_at,
				updated_at = NOW()
			WHERE sync_states.synced_at <= EXCLUDED.synced_at
		`).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

// Reset remove o estado da aba, forçando uma ressincronização completa
func (r *syncStateRepository) Reset(sheetName string) error {
	query, args, err := squirrel.
		Delete("sync_states").
		Where(squirrel.Eq{"sheet_name": sheetName}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}
