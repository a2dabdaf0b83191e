package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/campaign-tracker-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-tracker-api/internal/domain"
)

const (
	insightSnapshotsTable = "insight_snapshots s"
)

type SnapshotRepository interface {
	GetByEntityIDAndDate(entityID string, date time.Time) (*domain.InsightSnapshot, error)
	GetByDateRange(startDate, endDate time.Time) ([]*domain.InsightSnapshot, error)
	SaveOrUpdate(snapshot *domain.InsightSnapshot) error
	DeleteOlderThan(days int) (int64, error)
}

type snapshotRepository struct {
	conn *postgres.Connection
}

func NewSnapshotRepository(conn *postgres.Connection) SnapshotRepository {
	return &snapshotRepository{
		conn: conn,
	}
}

func (r *snapshotRepository) GetByEntityIDAndDate(entityID string, date time.Time) (*domain.InsightSnapshot, error) {
	query, args, err := squirrel.
		Select("s.id, s.entity_id, s.entity_name, s.date, s.metrics, s.created_at, s.updated_at").
		From(insightSnapshotsTable).
		Where(squirrel.Eq{"s.entity_id": entityID, "s.date": date.Format("2006-01-02")}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	snapshot, err := r.scanSnapshot(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear snapshot: %w", err)
	}

	return snapshot, nil
}

func (r *snapshotRepository) GetByDateRange(startDate, endDate time.Time) ([]*domain.InsightSnapshot, error) {
	query, args, err := squirrel.
		Select("s.id, s.entity_id, s.entity_name, s.date, s.metrics, s.created_at, s.updated_at").
		From(insightSnapshotsTable).
		Where(squirrel.GtOrEq{"s.date": startDate.Format("2006-01-02")}).
		Where(squirrel.LtOrEq{"s.date": endDate.Format("2006-01-02")}).
		OrderBy("s.entity_id ASC, s.date ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	snapshots := make([]*domain.InsightSnapshot, 0)
	for rows.Next() {
		snapshot, err := r.scanSnapshotRows(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear snapshots: %w", err)
		}
		snapshots = append(snapshots, snapshot)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return snapshots, nil
}

func (r *snapshotRepository) SaveOrUpdate(snapshot *domain.InsightSnapshot) error {
	var metricsJSON []byte
	var err error

	if snapshot.Metrics != nil {
		metricsJSON, err = json.Marshal(snapshot.Metrics)
		if err != nil {
			return fmt.Errorf("erro ao serializar métricas para JSON: %w", err)
		}
	}

	query := squirrel.StatementBuilder.
		Insert("insight_snapshots").
		Columns("entity_id", "entity_name", "date", "metrics").
		Values(
			snapshot.EntityID,
			snapshot.EntityName,
			snapshot.Date.Format("2006-01-02"),
			metricsJSON,
		).
		Suffix(`
			ON CONFLICT (entity_id, date) DO UPDATE SET
				entity_name = EXCLUDED.entity_name,
				metrics = EXCLUDED.metrics,
				updated_at = NOW()
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

func (r *snapshotRepository) DeleteOlderThan(days int) (int64, error) {
	cutoffDate := time.Now().AddDate(0, 0, -days).Format("2006-01-02")

	query, args, err := squirrel.
		Delete("insight_snapshots").
		Where(squirrel.Lt{"date": cutoffDate}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}

func (r *snapshotRepository) scanSnapshot(row *sql.Row) (*domain.InsightSnapshot, error) {
	snapshot := &domain.InsightSnapshot{}
	var metricsJSON []byte
	var dateStr string

	err := row.Scan(
		&snapshot.ID,
		&snapshot.EntityID,
		&snapshot.EntityName,
		&dateStr,
		&metricsJSON,
		&snapshot.CreatedAt,
		&snapshot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, fmt.Errorf("erro ao converter data: %w", err)
	}
	snapshot.Date = date

	if metricsJSON != nil {
		metrics := &domain.ProcessedMetric{}
		if err := json.Unmarshal(metricsJSON, metrics); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de métricas: %w", err)
		}
		snapshot.Metrics = metrics
	}

	return snapshot, nil
}

func (r *snapshotRepository) scanSnapshotRows(rows *sql.Rows) (*domain.InsightSnapshot, error) {
	snapshot := &domain.InsightSnapshot{}
	var metricsJSON []byte

	err := rows.Scan(
		&snapshot.ID,
		&snapshot.EntityID,
		&snapshot.EntityName,
		&snapshot.Date,
		&metricsJSON,
		&snapshot.CreatedAt,
		&snapshot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if metricsJSON != nil {
		metrics := &domain.ProcessedMetric{}
		if err := json.Unmarshal(metricsJSON, metrics); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de métricas: %w", err)
		}
		snapshot.Metrics = metrics
	}

	return snapshot, nil
}
