package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/sm8ta/garage_maintenance_microservice/internal/core/domain"
)

type ComponentRepository struct {
	db *sql.DB
}

func NewComponentRepository(db *sql.DB) *ComponentRepository {
	return &ComponentRepository{db: db}
}

const catalogColumns = `id, owner_scope, owner_user_id, vehicle_type, name, icon_id, is_active, sort_order, created_at`

const instanceColumns = `id, vehicle_id, component_catalog_id, alias, created_at`

func scanCatalogEntry(row rowScanner) (*domain.ComponentCatalogEntry, error) {
	entry := &domain.ComponentCatalogEntry{}
	var (
		owner  uuid.NullUUID
		iconID sql.NullString
	)
	err := row.Scan(
		&entry.ID,
		&entry.OwnerScope,
		&owner,
		&entry.VehicleType,
		&entry.Name,
		&iconID,
		&entry.IsActive,
		&entry.SortOrder,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if owner.Valid {
		entry.OwnerUserID = &owner.UUID
	}
	if iconID.Valid {
		entry.IconID = &iconID.String
	}
	return entry, nil
}

func scanInstance(row rowScanner) (*domain.VehicleComponent, error) {
	instance := &domain.VehicleComponent{}
	var alias sql.NullString
	err := row.Scan(
		&instance.ID,
		&instance.VehicleID,
		&instance.ComponentCatalogID,
		&alias,
		&instance.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if alias.Valid {
		instance.Alias = &alias.String
	}
	return instance, nil
}

func (r *ComponentRepository) CreateCatalogEntry(ctx context.Context, entry *domain.ComponentCatalogEntry) (*domain.ComponentCatalogEntry, error) {
	query := `INSERT INTO component_catalog (id, owner_scope, owner_user_id, vehicle_type, name, icon_id, is_active, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + catalogColumns

	created, err := scanCatalogEntry(r.db.QueryRowContext(ctx, query,
		entry.ID,
		entry.OwnerScope,
		entry.OwnerUserID,
		entry.VehicleType,
		entry.Name,
		entry.IconID,
		entry.IsActive,
		entry.SortOrder,
	))
	if err != nil {
		return nil, mapError(err, "component")
	}
	return created, nil
}

func (r *ComponentRepository) GetCatalogEntryByID(ctx context.Context, id uuid.UUID) (*domain.ComponentCatalogEntry, error) {
	query := `SELECT ` + catalogColumns + ` FROM component_catalog WHERE id = $1`

	entry, err := scanCatalogEntry(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err, "component")
	}
	return entry, nil
}

func (r *ComponentRepository) ListCatalogEntries(ctx context.Context, vehicleType domain.VehicleType, userID uuid.UUID) ([]*domain.ComponentCatalogEntry, error) {
	query := `SELECT ` + catalogColumns + `
		FROM component_catalog
		WHERE vehicle_type = $1
			AND is_active
			AND (owner_scope = 'global' OR owner_user_id = $2)
		ORDER BY sort_order, name`

	rows, err := r.db.QueryContext(ctx, query, vehicleType, userID)
	if err != nil {
		return nil, mapError(err, "component")
	}
	defer rows.Close()

	var entries []*domain.ComponentCatalogEntry
	for rows.Next() {
		entry, err := scanCatalogEntry(rows)
		if err != nil {
			return nil, mapError(err, "component")
		}
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, mapError(err, "component")
	}
	return entries, nil
}

func (r *ComponentRepository) GetInstancesByVehicleID(ctx context.Context, vehicleID uuid.UUID) ([]*domain.VehicleComponent, error) {
	query := `SELECT ` + instanceColumns + ` FROM vehicle_components WHERE vehicle_id = $1`

	rows, err := r.db.QueryContext(ctx, query, vehicleID)
	if err != nil {
		return nil, mapError(err, "vehicle component")
	}
	defer rows.Close()

	var instances []*domain.VehicleComponent
	for rows.Next() {
		instance, err := scanInstance(rows)
		if err != nil {
			return nil, mapError(err, "vehicle component")
		}
		instances = append(instances, instance)
	}
	if err = rows.Err(); err != nil {
		return nil, mapError(err, "vehicle component")
	}
	return instances, nil
}

func (r *ComponentRepository) GetInstanceByID(ctx context.Context, id uuid.UUID) (*domain.VehicleComponent, error) {
	query := `SELECT ` + instanceColumns + ` FROM vehicle_components WHERE id = $1`

	instance, err := scanInstance(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err, "vehicle component")
	}
	return instance, nil
}

// UpsertInstance relies on the unique (vehicle_id, component_catalog_id)
// constraint. The no-op update makes RETURNING yield the existing row when
// another request inserted it first.
func (r *ComponentRepository) UpsertInstance(ctx context.Context, vehicleID, componentCatalogID uuid.UUID) (*domain.VehicleComponent, error) {
	query := `INSERT INTO vehicle_components (id, vehicle_id, component_catalog_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (vehicle_id, component_catalog_id)
		DO UPDATE SET component_catalog_id = EXCLUDED.component_catalog_id
		RETURNING ` + instanceColumns

	instance, err := scanInstance(r.db.QueryRowContext(ctx, query, uuid.New(), vehicleID, componentCatalogID))
	if err != nil {
		return nil, mapError(err, "vehicle component")
	}
	return instance, nil
}

func (r *ComponentRepository) SetInstanceAlias(ctx context.Context, id uuid.UUID, alias *string) (*domain.VehicleComponent, error) {
	query := `UPDATE vehicle_components SET alias = $1 WHERE id = $2 RETURNING ` + instanceColumns

	instance, err := scanInstance(r.db.QueryRowContext(ctx, query, alias, id))
	if err != nil {
		return nil, mapError(err, "vehicle component")
	}
	return instance, nil
}
