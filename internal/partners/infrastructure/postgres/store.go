package postgres

import (
	"context"
	"database/sql"
	"errors"

	"banque-numerique/internal/dates"
	inventory "banque-numerique/internal/inventory/domain"
	partners "banque-numerique/internal/partners/domain"
)

// Store is a Postgres implementation of the partners store. The
// interlocuteur delete cascade runs in a single transaction.
type Store struct {
	db *sql.DB
}

// NewStore constructs a store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const interlocuteurColumns = `
id, nom_structure, code_postal, ville,
contact1_nom, contact1_email, contact1_telephone,
contact2_nom, contact2_email, contact2_telephone,
date_initiale, date_renouvellement, date_ajout`

// GetInterlocuteur loads a structure by id.
func (s *Store) GetInterlocuteur(ctx context.Context, id int64) (*partners.Interlocuteur, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("partners store: nil db")
	}
	row := s.db.QueryRowContext(ctx, `
SELECT `+interlocuteurColumns+`
FROM interlocuteurs
WHERE id = $1
LIMIT 1`, id)
	interlocuteur, err := scanInterlocuteur(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, partners.ErrInterlocuteurNotFound
		}
		return nil, err
	}
	return interlocuteur, nil
}

// ListInterlocuteurs returns all structures in insertion (id) order.
func (s *Store) ListInterlocuteurs(ctx context.Context) ([]partners.Interlocuteur, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("partners store: nil db")
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT `+interlocuteurColumns+`
FROM interlocuteurs
ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []partners.Interlocuteur
	for rows.Next() {
		interlocuteur, err := scanInterlocuteur(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *interlocuteur)
	}
	return result, rows.Err()
}

// CreateInterlocuteur inserts the structure and populates its id.
func (s *Store) CreateInterlocuteur(ctx context.Context, interlocuteur *partners.Interlocuteur) error {
	if s == nil || s.db == nil {
		return errors.New("partners store: nil db")
	}
	if interlocuteur == nil {
		return errors.New("partners store: nil interlocuteur")
	}
	contact2 := contactFields(interlocuteur.Interlocuteur2)
	return s.db.QueryRowContext(ctx, `
INSERT INTO interlocuteurs (
	nom_structure, code_postal, ville,
	contact1_nom, contact1_email, contact1_telephone,
	contact2_nom, contact2_email, contact2_telephone,
	date_initiale, date_renouvellement, date_ajout
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
RETURNING id`,
		interlocuteur.NomStructure,
		interlocuteur.CodePostal,
		interlocuteur.Ville,
		interlocuteur.Interlocuteur1.Nom,
		interlocuteur.Interlocuteur1.Email,
		interlocuteur.Interlocuteur1.Telephone,
		contact2[0], contact2[1], contact2[2],
		interlocuteur.DateInitiale.Time(),
		nullableDate(interlocuteur.DateRenouvellement),
		interlocuteur.DateAjout.Time(),
	).Scan(&interlocuteur.ID)
}

// UpdateInterlocuteur replaces the row matching the id.
func (s *Store) UpdateInterlocuteur(ctx context.Context, interlocuteur *partners.Interlocuteur) error {
	if s == nil || s.db == nil {
		return errors.New("partners store: nil db")
	}
	if interlocuteur == nil {
		return errors.New("partners store: nil interlocuteur")
	}
	contact2 := contactFields(interlocuteur.Interlocuteur2)
	result, err := s.db.ExecContext(ctx, `
UPDATE interlocuteurs
SET nom_structure = $2, code_postal = $3, ville = $4,
	contact1_nom = $5, contact1_email = $6, contact1_telephone = $7,
	contact2_nom = $8, contact2_email = $9, contact2_telephone = $10,
	date_initiale = $11, date_renouvellement = $12
WHERE id = $1`,
		interlocuteur.ID,
		interlocuteur.NomStructure,
		interlocuteur.CodePostal,
		interlocuteur.Ville,
		interlocuteur.Interlocuteur1.Nom,
		interlocuteur.Interlocuteur1.Email,
		interlocuteur.Interlocuteur1.Telephone,
		contact2[0], contact2[1], contact2[2],
		interlocuteur.DateInitiale.Time(),
		nullableDate(interlocuteur.DateRenouvellement),
	)
	if err != nil {
		return err
	}
	return requireRow(result, partners.ErrInterlocuteurNotFound)
}

// DeleteInterlocuteur removes the structure and its donations in one
// transaction.
func (s *Store) DeleteInterlocuteur(ctx context.Context, id int64) error {
	if s == nil || s.db == nil {
		return errors.New("partners store: nil db")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM donations WHERE interlocuteur_id = $1`, id); err != nil {
		return err
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM interlocuteurs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if err := requireRow(result, partners.ErrInterlocuteurNotFound); err != nil {
		return err
	}
	return tx.Commit()
}

const donationColumns = `
id, interlocuteur_id, nom_structure, type_appareil, quantite, date_don, description, numero_reference`

// GetDonation loads a donation by id.
func (s *Store) GetDonation(ctx context.Context, id int64) (*partners.Donation, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("partners store: nil db")
	}
	row := s.db.QueryRowContext(ctx, `
SELECT `+donationColumns+`
FROM donations
WHERE id = $1
LIMIT 1`, id)
	donation, err := scanDonation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, partners.ErrDonationNotFound
		}
		return nil, err
	}
	return donation, nil
}

// ListDonations returns all donations in insertion (id) order.
func (s *Store) ListDonations(ctx context.Context) ([]partners.Donation, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("partners store: nil db")
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT `+donationColumns+`
FROM donations
ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []partners.Donation
	for rows.Next() {
		donation, err := scanDonation(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *donation)
	}
	return result, rows.Err()
}

// CreateDonation inserts the donation and populates its id.
func (s *Store) CreateDonation(ctx context.Context, donation *partners.Donation) error {
	if s == nil || s.db == nil {
		return errors.New("partners store: nil db")
	}
	if donation == nil {
		return errors.New("partners store: nil donation")
	}
	return s.db.QueryRowContext(ctx, `
INSERT INTO donations (
	interlocuteur_id, nom_structure, type_appareil, quantite, date_don, description, numero_reference
) VALUES ($1,$2,$3,$4,$5,$6,$7)
RETURNING id`,
		donation.InterlocuteurID,
		donation.NomStructure,
		string(donation.TypeAppareil),
		donation.Quantite,
		donation.DateDon.Time(),
		donation.Description,
		donation.NumeroReference,
	).Scan(&donation.ID)
}

// UpdateDonation replaces the row matching the id.
func (s *Store) UpdateDonation(ctx context.Context, donation *partners.Donation) error {
	if s == nil || s.db == nil {
		return errors.New("partners store: nil db")
	}
	if donation == nil {
		return errors.New("partners store: nil donation")
	}
	result, err := s.db.ExecContext(ctx, `
UPDATE donations
SET interlocuteur_id = $2, nom_structure = $3, type_appareil = $4,
	quantite = $5, date_don = $6, description = $7, numero_reference = $8
WHERE id = $1`,
		donation.ID,
		donation.InterlocuteurID,
		donation.NomStructure,
		string(donation.TypeAppareil),
		donation.Quantite,
		donation.DateDon.Time(),
		donation.Description,
		donation.NumeroReference,
	)
	if err != nil {
		return err
	}
	return requireRow(result, partners.ErrDonationNotFound)
}

// DeleteDonation removes the row matching id.
func (s *Store) DeleteDonation(ctx context.Context, id int64) error {
	if s == nil || s.db == nil {
		return errors.New("partners store: nil db")
	}
	result, err := s.db.ExecContext(ctx, `DELETE FROM donations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(result, partners.ErrDonationNotFound)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInterlocuteur(row rowScanner) (*partners.Interlocuteur, error) {
	var (
		interlocuteur      partners.Interlocuteur
		contact2Nom        sql.NullString
		contact2Email      sql.NullString
		contact2Telephone  sql.NullString
		dateInitiale       sql.NullTime
		dateRenouvellement sql.NullTime
		dateAjout          sql.NullTime
	)
	if err := row.Scan(
		&interlocuteur.ID,
		&interlocuteur.NomStructure,
		&interlocuteur.CodePostal,
		&interlocuteur.Ville,
		&interlocuteur.Interlocuteur1.Nom,
		&interlocuteur.Interlocuteur1.Email,
		&interlocuteur.Interlocuteur1.Telephone,
		&contact2Nom,
		&contact2Email,
		&contact2Telephone,
		&dateInitiale,
		&dateRenouvellement,
		&dateAjout,
	); err != nil {
		return nil, err
	}
	if contact2Nom.Valid && contact2Nom.String != "" {
		interlocuteur.Interlocuteur2 = &partners.Contact{
			Nom:       contact2Nom.String,
			Email:     contact2Email.String,
			Telephone: contact2Telephone.String,
		}
	}
	if dateInitiale.Valid {
		interlocuteur.DateInitiale = dates.FromTime(dateInitiale.Time)
	}
	if dateRenouvellement.Valid {
		interlocuteur.DateRenouvellement = dates.FromTime(dateRenouvellement.Time)
	}
	if dateAjout.Valid {
		interlocuteur.DateAjout = dates.FromTime(dateAjout.Time)
	}
	return &interlocuteur, nil
}

func scanDonation(row rowScanner) (*partners.Donation, error) {
	var (
		donation     partners.Donation
		typeAppareil string
		dateDon      sql.NullTime
		description  sql.NullString
	)
	if err := row.Scan(
		&donation.ID,
		&donation.InterlocuteurID,
		&donation.NomStructure,
		&typeAppareil,
		&donation.Quantite,
		&dateDon,
		&description,
		&donation.NumeroReference,
	); err != nil {
		return nil, err
	}
	donation.TypeAppareil = inventory.DeviceType(typeAppareil)
	if dateDon.Valid {
		donation.DateDon = dates.FromTime(dateDon.Time)
	}
	donation.Description = description.String
	return &donation, nil
}

func contactFields(contact *partners.Contact) [3]any {
	if contact == nil || contact.Nom == "" {
		return [3]any{nil, nil, nil}
	}
	return [3]any{contact.Nom, contact.Email, contact.Telephone}
}

func nullableDate(d dates.Date) any {
	if d.IsZero() {
		return nil
	}
	return d.Time()
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
