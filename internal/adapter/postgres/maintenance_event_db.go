package postgres

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/sm8ta/garage_maintenance_microservice/internal/core/domain"
)

type MaintenanceEventRepository struct {
	db *sql.DB
}

func NewMaintenanceEventRepository(db *sql.DB) *MaintenanceEventRepository {
	return &MaintenanceEventRepository{db: db}
}

// eventSelect joins the display names used by history listings.
const eventSelect = `SELECT e.id, e.vehicle_id, e.vehicle_component_id, e.maintenance_type_id,
		e.performed_at, e.km_at_service, e.custom_name, e.note,
		e.interval_km, e.interval_time_months, e.details, e.created_at,
		COALESCE(t.name, ''), COALESCE(NULLIF(vc.alias, ''), cc.name, '')
	FROM maintenance_events e
	JOIN vehicle_components vc ON vc.id = e.vehicle_component_id
	JOIN component_catalog cc ON cc.id = vc.component_catalog_id
	LEFT JOIN maintenance_type_catalog t ON t.id = e.maintenance_type_id`

func scanEvent(row rowScanner) (*domain.MaintenanceEvent, error) {
	event := &domain.MaintenanceEvent{}
	var (
		typeID     uuid.NullUUID
		customName sql.NullString
		note       sql.NullString
		intervalKm sql.NullInt64
		intervalMo sql.NullInt64
		details    []byte
	)
	err := row.Scan(
		&event.ID,
		&event.VehicleID,
		&event.VehicleComponentID,
		&typeID,
		&event.PerformedAt,
		&event.KmAtService,
		&customName,
		&note,
		&intervalKm,
		&intervalMo,
		&details,
		&event.CreatedAt,
		&event.MaintenanceTypeName,
		&event.ComponentName,
	)
	if err != nil {
		return nil, err
	}
	event.PerformedAt = calendarDate(event.PerformedAt)
	if typeID.Valid {
		event.MaintenanceTypeID = &typeID.UUID
	}
	if customName.Valid {
		event.CustomName = &customName.String
	}
	if note.Valid {
		event.Note = &note.String
	}
	if intervalKm.Valid {
		v := int(intervalKm.Int64)
		event.IntervalKm = &v
	}
	if intervalMo.Valid {
		v := int(intervalMo.Int64)
		event.IntervalTimeMonths = &v
	}
	if len(details) > 0 && !isJSONNull(details) {
		event.Details = json.RawMessage(details)
	}
	return event, nil
}

// jsonArg sends details as text so postgres parses it into jsonb. An absent
// blob and a JSON null are both stored as SQL NULL.
func jsonArg(details json.RawMessage) any {
	if len(details) == 0 || isJSONNull(details) {
		return nil
	}
	return string(details)
}

func isJSONNull(raw []byte) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

func (r *MaintenanceEventRepository) CreateEvent(ctx context.Context, event *domain.MaintenanceEvent) (*domain.MaintenanceEvent, error) {
	query := `INSERT INTO maintenance_events (id, vehicle_id, vehicle_component_id, maintenance_type_id,
			performed_at, km_at_service, custom_name, note, interval_km, interval_time_months, details)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		event.ID,
		event.VehicleID,
		event.VehicleComponentID,
		event.MaintenanceTypeID,
		dateArg(event.PerformedAt),
		event.KmAtService,
		event.CustomName,
		event.Note,
		event.IntervalKm,
		event.IntervalTimeMonths,
		jsonArg(event.Details),
	)
	if err != nil {
		return nil, mapError(err, "maintenance event")
	}

	return r.GetEventByID(ctx, event.ID)
}

// UpdateEvent overwrites every mutable column, clearing those that are nil.
func (r *MaintenanceEventRepository) UpdateEvent(ctx context.Context, event *domain.MaintenanceEvent) (*domain.MaintenanceEvent, error) {
	query := `UPDATE maintenance_events
		SET
			vehicle_component_id = $1,
			maintenance_type_id = $2,
			performed_at = $3,
			km_at_service = $4,
			custom_name = $5,
			note = $6,
			interval_km = $7,
			interval_time_months = $8,
			details = $9
		WHERE id = $10`

	result, err := r.db.ExecContext(ctx, query,
		event.VehicleComponentID,
		event.MaintenanceTypeID,
		dateArg(event.PerformedAt),
		event.KmAtService,
		event.CustomName,
		event.Note,
		event.IntervalKm,
		event.IntervalTimeMonths,
		jsonArg(event.Details),
		event.ID,
	)
	if err != nil {
		return nil, mapError(err, "maintenance event")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, mapError(err, "maintenance event")
	}
	if rowsAffected == 0 {
		return nil, mapError(sql.ErrNoRows, "maintenance event")
	}

	return r.GetEventByID(ctx, event.ID)
}

func (r *MaintenanceEventRepository) GetEventByID(ctx context.Context, id uuid.UUID) (*domain.MaintenanceEvent, error) {
	query := eventSelect + ` WHERE e.id = $1`

	event, err := scanEvent(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err, "maintenance event")
	}
	return event, nil
}

func (r *MaintenanceEventRepository) GetEventsByVehicleID(ctx context.Context, vehicleID uuid.UUID, q domain.EventQuery) ([]*domain.MaintenanceEvent, error) {
	order := "DESC"
	if q.Ascending {
		order = "ASC"
	}
	query := eventSelect + ` WHERE e.vehicle_id = $1
		ORDER BY e.performed_at ` + order + `, e.created_at ` + order

	args := []any{vehicleID}
	if q.Limit > 0 {
		query += ` LIMIT $2`
		args = append(args, q.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "maintenance event")
	}
	defer rows.Close()

	var events []*domain.MaintenanceEvent
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, mapError(err, "maintenance event")
		}
		events = append(events, event)
	}
	if err = rows.Err(); err != nil {
		return nil, mapError(err, "maintenance event")
	}
	return events, nil
}
