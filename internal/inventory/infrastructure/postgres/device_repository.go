package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"banque-numerique/internal/dates"
	inventory "banque-numerique/internal/inventory/domain"
)

// DBTX abstracts *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const defaultDevicesTable = "devices"

// DeviceRepository is a Postgres implementation for devices. All
// statements are parameterized; user input never reaches query text.
type DeviceRepository struct {
	db    DBTX
	table string
}

// NewDeviceRepository constructs a repository.
func NewDeviceRepository(db DBTX, opts ...DeviceOption) *DeviceRepository {
	repo := &DeviceRepository{db: db, table: defaultDevicesTable}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}

// DeviceOption configures the repository.
type DeviceOption func(*DeviceRepository)

// WithDevicesTable overrides the default table name.
func WithDevicesTable(table string) DeviceOption {
	return func(repo *DeviceRepository) {
		if table != "" {
			repo.table = table
		}
	}
}

// Get loads a device by id.
func (r *DeviceRepository) Get(ctx context.Context, id int64) (*inventory.Device, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("device repo: nil db")
	}
	query := fmt.Sprintf(`
SELECT id, type, modele, marque, annee, etat, numero_serie, numero_inventaire, date_ajout, interlocuteur_id
FROM %s
WHERE id = $1
LIMIT 1`, r.table)

	device, err := scanDevice(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, inventory.ErrDeviceNotFound
		}
		return nil, err
	}
	return device, nil
}

// List returns all devices in insertion (id) order.
func (r *DeviceRepository) List(ctx context.Context) ([]inventory.Device, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("device repo: nil db")
	}
	query := fmt.Sprintf(`
SELECT id, type, modele, marque, annee, etat, numero_serie, numero_inventaire, date_ajout, interlocuteur_id
FROM %s
ORDER BY id`, r.table)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var devices []inventory.Device
	for rows.Next() {
		device, err := scanDevice(rows)
		if err != nil {
			return nil, err
		}
		devices = append(devices, *device)
	}
	return devices, rows.Err()
}

// Create inserts the device and populates its id.
func (r *DeviceRepository) Create(ctx context.Context, device *inventory.Device) error {
	if r == nil || r.db == nil {
		return errors.New("device repo: nil db")
	}
	if device == nil {
		return errors.New("device repo: nil device")
	}
	query := fmt.Sprintf(`
INSERT INTO %s (type, modele, marque, annee, etat, numero_serie, numero_inventaire, date_ajout, interlocuteur_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id`, r.table)

	return r.db.QueryRowContext(
		ctx,
		query,
		string(device.Type),
		device.Modele,
		device.Marque,
		device.Annee,
		string(device.Etat),
		device.NumeroSerie,
		device.NumeroInventaire,
		device.DateAjout.Time(),
		nullableID(device.InterlocuteurID),
	).Scan(&device.ID)
}

// Update replaces the row matching the device id.
func (r *DeviceRepository) Update(ctx context.Context, device *inventory.Device) error {
	if r == nil || r.db == nil {
		return errors.New("device repo: nil db")
	}
	if device == nil {
		return errors.New("device repo: nil device")
	}
	query := fmt.Sprintf(`
UPDATE %s
SET type = $2, modele = $3, marque = $4, annee = $5, etat = $6,
	numero_serie = $7, numero_inventaire = $8, date_ajout = $9, interlocuteur_id = $10
WHERE id = $1`, r.table)

	result, err := r.db.ExecContext(
		ctx,
		query,
		device.ID,
		string(device.Type),
		device.Modele,
		device.Marque,
		device.Annee,
		string(device.Etat),
		device.NumeroSerie,
		device.NumeroInventaire,
		device.DateAjout.Time(),
		nullableID(device.InterlocuteurID),
	)
	if err != nil {
		return err
	}
	return requireRow(result, inventory.ErrDeviceNotFound)
}

// Delete removes the row matching id.
func (r *DeviceRepository) Delete(ctx context.Context, id int64) error {
	if r == nil || r.db == nil {
		return errors.New("device repo: nil db")
	}
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table)
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return requireRow(result, inventory.ErrDeviceNotFound)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDevice(row rowScanner) (*inventory.Device, error) {
	var (
		device          inventory.Device
		deviceType      string
		etat            string
		dateAjout       sql.NullTime
		interlocuteurID sql.NullInt64
	)
	if err := row.Scan(
		&device.ID,
		&deviceType,
		&device.Modele,
		&device.Marque,
		&device.Annee,
		&etat,
		&device.NumeroSerie,
		&device.NumeroInventaire,
		&dateAjout,
		&interlocuteurID,
	); err != nil {
		return nil, err
	}
	device.Type = inventory.DeviceType(deviceType)
	device.Etat = inventory.Etat(etat)
	if dateAjout.Valid {
		device.DateAjout = dates.FromTime(dateAjout.Time)
	}
	if interlocuteurID.Valid {
		device.InterlocuteurID = interlocuteurID.Int64
	}
	return &device, nil
}

func nullableID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}

func requireRow(result sql.Result, missing error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return missing
	}
	return nil
}
