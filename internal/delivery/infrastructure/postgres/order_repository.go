package postgres

import (
	"context"
	"database/sql"
	"errors"

	"banque-numerique/internal/dates"
	delivery "banque-numerique/internal/delivery/domain"
)

// OrderRepository is a Postgres implementation for delivery orders.
// The note counter is the delivery_note_seq sequence (START 1001), so
// numbers survive restarts and are never reused.
type OrderRepository struct {
	db *sql.DB
}

// NewOrderRepository constructs a repository.
func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

const orderColumns = `
id, numero_commande, type_appareil, nom_structure, adresse, ville, code_postal,
nom_demandeur, contact_demandeur, email_demandeur, note, date_commande, statut, numero_bon_livraison`

// Get loads an order by id.
func (r *OrderRepository) Get(ctx context.Context, id int64) (*delivery.Order, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("order repo: nil db")
	}
	row := r.db.QueryRowContext(ctx, `
SELECT `+orderColumns+`
FROM delivery_orders
WHERE id = $1
LIMIT 1`, id)
	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, delivery.ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

// List returns all orders in insertion (id) order.
func (r *OrderRepository) List(ctx context.Context) ([]delivery.Order, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("order repo: nil db")
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT `+orderColumns+`
FROM delivery_orders
ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []delivery.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

// Create inserts the order and populates its id.
func (r *OrderRepository) Create(ctx context.Context, order *delivery.Order) error {
	if r == nil || r.db == nil {
		return errors.New("order repo: nil db")
	}
	if order == nil {
		return errors.New("order repo: nil order")
	}
	return r.db.QueryRowContext(ctx, `
INSERT INTO delivery_orders (
	numero_commande, type_appareil, nom_structure, adresse, ville, code_postal,
	nom_demandeur, contact_demandeur, email_demandeur, note, date_commande, statut, numero_bon_livraison
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
RETURNING id`,
		order.NumeroCommande,
		string(order.TypeAppareil),
		order.NomStructure,
		order.Adresse,
		order.Ville,
		order.CodePostal,
		order.NomDemandeur,
		order.ContactDemandeur,
		order.EmailDemandeur,
		order.Note,
		order.DateCommande.Time(),
		string(order.Statut),
		order.NumeroBonLivraison,
	).Scan(&order.ID)
}

// Update replaces the row matching the order id.
func (r *OrderRepository) Update(ctx context.Context, order *delivery.Order) error {
	if r == nil || r.db == nil {
		return errors.New("order repo: nil db")
	}
	if order == nil {
		return errors.New("order repo: nil order")
	}
	result, err := r.db.ExecContext(ctx, `
UPDATE delivery_orders
SET numero_commande = $2, type_appareil = $3, nom_structure = $4, adresse = $5,
	ville = $6, code_postal = $7, nom_demandeur = $8, contact_demandeur = $9,
	email_demandeur = $10, note = $11, date_commande = $12, statut = $13, numero_bon_livraison = $14
WHERE id = $1`,
		order.ID,
		order.NumeroCommande,
		string(order.TypeAppareil),
		order.NomStructure,
		order.Adresse,
		order.Ville,
		order.CodePostal,
		order.NomDemandeur,
		order.ContactDemandeur,
		order.EmailDemandeur,
		order.Note,
		order.DateCommande.Time(),
		string(order.Statut),
		order.NumeroBonLivraison,
	)
	if err != nil {
		return err
	}
	return requireRow(result, delivery.ErrOrderNotFound)
}

// Delete removes the row matching id.
func (r *OrderRepository) Delete(ctx context.Context, id int64) error {
	if r == nil || r.db == nil {
		return errors.New("order repo: nil db")
	}
	result, err := r.db.ExecContext(ctx, `DELETE FROM delivery_orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(result, delivery.ErrOrderNotFound)
}

// NextNoteSequence draws the next value from the note sequence.
func (r *OrderRepository) NextNoteSequence(ctx context.Context) (int64, error) {
	if r == nil || r.db == nil {
		return 0, errors.New("order repo: nil db")
	}
	var seq int64
	if err := r.db.QueryRowContext(ctx, `SELECT nextval('delivery_note_seq')`).Scan(&seq); err != nil {
		return 0, err
	}
	return seq, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*delivery.Order, error) {
	var (
		order        delivery.Order
		typeAppareil string
		statut       string
		email        sql.NullString
		note         sql.NullString
		noteNumber   sql.NullString
		dateCommande sql.NullTime
	)
	if err := row.Scan(
		&order.ID,
		&order.NumeroCommande,
		&typeAppareil,
		&order.NomStructure,
		&order.Adresse,
		&order.Ville,
		&order.CodePostal,
		&order.NomDemandeur,
		&order.ContactDemandeur,
		&email,
		&note,
		&dateCommande,
		&statut,
		&noteNumber,
	); err != nil {
		return nil, err
	}
	order.TypeAppareil = delivery.OrderType(typeAppareil)
	order.Statut = delivery.Statut(statut)
	order.EmailDemandeur = email.String
	order.Note = note.String
	order.NumeroBonLivraison = noteNumber.String
	if dateCommande.Valid {
		order.DateCommande = dates.FromTime(dateCommande.Time)
	}
	return &order, nil
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
