package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/sm8ta/garage_maintenance_microservice/internal/core/domain"
)

type MaintenanceTypeRepository struct {
	db *sql.DB
}

func NewMaintenanceTypeRepository(db *sql.DB) *MaintenanceTypeRepository {
	return &MaintenanceTypeRepository{db: db}
}

const typeColumns = `t.id, t.owner_scope, t.owner_user_id, t.name, t.description, t.is_standard, t.created_at`

const linkColumns = `id, maintenance_type_id, component_catalog_id, created_at`

func scanType(row rowScanner) (*domain.MaintenanceTypeCatalogEntry, error) {
	entry := &domain.MaintenanceTypeCatalogEntry{}
	var (
		owner       uuid.NullUUID
		description sql.NullString
	)
	err := row.Scan(
		&entry.ID,
		&entry.OwnerScope,
		&owner,
		&entry.Name,
		&description,
		&entry.IsStandard,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if owner.Valid {
		entry.OwnerUserID = &owner.UUID
	}
	if description.Valid {
		entry.Description = &description.String
	}
	return entry, nil
}

func scanLink(row rowScanner) (*domain.MaintenanceTypeComponentLink, error) {
	link := &domain.MaintenanceTypeComponentLink{}
	err := row.Scan(
		&link.ID,
		&link.MaintenanceTypeID,
		&link.ComponentCatalogID,
		&link.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return link, nil
}

func (r *MaintenanceTypeRepository) queryTypes(ctx context.Context, query string, args ...any) ([]*domain.MaintenanceTypeCatalogEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "maintenance type")
	}
	defer rows.Close()

	var types []*domain.MaintenanceTypeCatalogEntry
	for rows.Next() {
		entry, err := scanType(rows)
		if err != nil {
			return nil, mapError(err, "maintenance type")
		}
		types = append(types, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, mapError(err, "maintenance type")
	}
	return types, nil
}

func (r *MaintenanceTypeRepository) CreateType(ctx context.Context, entry *domain.MaintenanceTypeCatalogEntry) (*domain.MaintenanceTypeCatalogEntry, error) {
	query := `INSERT INTO maintenance_type_catalog AS t (id, owner_scope, owner_user_id, name, description, is_standard)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + typeColumns

	created, err := scanType(r.db.QueryRowContext(ctx, query,
		entry.ID,
		entry.OwnerScope,
		entry.OwnerUserID,
		entry.Name,
		entry.Description,
		entry.IsStandard,
	))
	if err != nil {
		return nil, mapError(err, "maintenance type")
	}
	return created, nil
}

func (r *MaintenanceTypeRepository) GetTypeByID(ctx context.Context, id uuid.UUID) (*domain.MaintenanceTypeCatalogEntry, error) {
	query := `SELECT ` + typeColumns + ` FROM maintenance_type_catalog t WHERE t.id = $1`

	entry, err := scanType(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err, "maintenance type")
	}
	return entry, nil
}

func (r *MaintenanceTypeRepository) ListTypes(ctx context.Context, userID uuid.UUID) ([]*domain.MaintenanceTypeCatalogEntry, error) {
	query := `SELECT ` + typeColumns + `
		FROM maintenance_type_catalog t
		WHERE t.owner_scope = 'global' OR t.owner_user_id = $1
		ORDER BY t.name`

	return r.queryTypes(ctx, query, userID)
}

func (r *MaintenanceTypeRepository) ListTypesByComponent(ctx context.Context, componentCatalogID, userID uuid.UUID) ([]*domain.MaintenanceTypeCatalogEntry, error) {
	query := `SELECT DISTINCT ` + typeColumns + `
		FROM maintenance_type_catalog t
		JOIN maintenance_type_components l ON l.maintenance_type_id = t.id
		WHERE l.component_catalog_id = $1
			AND (t.owner_scope = 'global' OR t.owner_user_id = $2)
		ORDER BY t.name`

	return r.queryTypes(ctx, query, componentCatalogID, userID)
}

func (r *MaintenanceTypeRepository) UpsertLink(ctx context.Context, maintenanceTypeID, componentCatalogID uuid.UUID) (*domain.MaintenanceTypeComponentLink, error) {
	query := `INSERT INTO maintenance_type_components (id, maintenance_type_id, component_catalog_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (maintenance_type_id, component_catalog_id)
		DO UPDATE SET component_catalog_id = EXCLUDED.component_catalog_id
		RETURNING ` + linkColumns

	link, err := scanLink(r.db.QueryRowContext(ctx, query, uuid.New(), maintenanceTypeID, componentCatalogID))
	if err != nil {
		return nil, mapError(err, "maintenance type link")
	}
	return link, nil
}

func (r *MaintenanceTypeRepository) DeleteLink(ctx context.Context, maintenanceTypeID, componentCatalogID uuid.UUID) error {
	query := `DELETE FROM maintenance_type_components WHERE maintenance_type_id = $1 AND component_catalog_id = $2`

	if _, err := r.db.ExecContext(ctx, query, maintenanceTypeID, componentCatalogID); err != nil {
		return mapError(err, "maintenance type link")
	}
	return nil
}
