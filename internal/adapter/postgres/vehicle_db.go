package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/sm8ta/garage_maintenance_microservice/internal/core/domain"
)

type VehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) *VehicleRepository {
	return &VehicleRepository{
		db,
	}
}

const vehicleColumns = `id, user_id, brand, model, year, type, current_km, vin, first_registration, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVehicle(row rowScanner) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	var (
		year         sql.NullInt64
		vin          sql.NullString
		registration sql.NullTime
	)
	err := row.Scan(
		&v.ID,
		&v.UserID,
		&v.Brand,
		&v.Model,
		&year,
		&v.Type,
		&v.CurrentKm,
		&vin,
		&registration,
		&v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if year.Valid {
		y := int(year.Int64)
		v.Year = &y
	}
	if vin.Valid {
		v.VIN = &vin.String
	}
	if registration.Valid {
		d := calendarDate(registration.Time)
		v.FirstRegistration = &d
	}
	return v, nil
}

func (r *VehicleRepository) CreateVehicle(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error) {
	query := `INSERT INTO vehicles (id, user_id, brand, model, year, type, current_km, vin, first_registration)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING ` + vehicleColumns

	created, err := scanVehicle(r.db.QueryRowContext(ctx, query,
		vehicle.ID,
		vehicle.UserID,
		vehicle.Brand,
		vehicle.Model,
		vehicle.Year,
		vehicle.Type,
		vehicle.CurrentKm,
		vehicle.VIN,
		nullDateArg(vehicle.FirstRegistration),
	))
	if err != nil {
		return nil, mapError(err, "vehicle")
	}
	return created, nil
}

func (r *VehicleRepository) GetVehicleByID(ctx context.Context, vehicleID uuid.UUID) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`

	vehicle, err := scanVehicle(r.db.QueryRowContext(ctx, query, vehicleID))
	if err != nil {
		return nil, mapError(err, "vehicle")
	}
	return vehicle, nil
}

func (r *VehicleRepository) GetVehiclesByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, mapError(err, "vehicle")
	}
	defer rows.Close()

	var vehicles []*domain.Vehicle
	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			return nil, mapError(err, "vehicle")
		}
		vehicles = append(vehicles, vehicle)
	}
	if err = rows.Err(); err != nil {
		return nil, mapError(err, "vehicle")
	}
	return vehicles, nil
}

func (r *VehicleRepository) SetCurrentKm(ctx context.Context, vehicleID uuid.UUID, km int) (*domain.Vehicle, error) {
	query := `UPDATE vehicles SET current_km = $1 WHERE id = $2 RETURNING ` + vehicleColumns

	vehicle, err := scanVehicle(r.db.QueryRowContext(ctx, query, km, vehicleID))
	if err != nil {
		return nil, mapError(err, "vehicle")
	}
	return vehicle, nil
}

// RaiseCurrentKm is a single conditional update so concurrent raises settle
// on the highest value.
func (r *VehicleRepository) RaiseCurrentKm(ctx context.Context, vehicleID uuid.UUID, km int) (bool, error) {
	query := `UPDATE vehicles SET current_km = $1 WHERE id = $2 AND current_km < $1`

	result, err := r.db.ExecContext(ctx, query, km, vehicleID)
	if err != nil {
		return false, mapError(err, "vehicle")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, mapError(err, "vehicle")
	}

	return rowsAffected > 0, nil
}

func (r *VehicleRepository) DeleteVehicle(ctx context.Context, vehicleID uuid.UUID) error {
	query := `DELETE FROM vehicles WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, vehicleID)
	if err != nil {
		return mapError(err, "vehicle")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return mapError(err, "vehicle")
	}

	if rowsAffected == 0 {
		return mapError(sql.ErrNoRows, "vehicle")
	}

	return nil
}
