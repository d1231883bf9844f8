// Package seed loads a small demonstration dataset into the memory
// store so the application is explorable without a database.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"banque-numerique/internal/dates"
	delivery "banque-numerique/internal/delivery/domain"
	inventory "banque-numerique/internal/inventory/domain"
	partners "banque-numerique/internal/partners/domain"
)

// GenerateSerialNumber builds a plausible serial for demo devices:
// three brand letters, three digits, one letter and a two-digit year.
// Randomized on purpose, only the inventory number identifies a device.
func GenerateSerialNumber(marque string, year int) string {
	prefix := strings.ToUpper(marque)
	prefix = strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' {
			return r
		}
		return -1
	}, prefix)
	for len(prefix) < 3 {
		prefix += "X"
	}
	prefix = prefix[:3]
	letter := rune('A' + rand.Intn(26))
	return fmt.Sprintf("%s%03d%c%02d", prefix, rand.Intn(1000), letter, year%100)
}

// Interlocuteurs returns the demo partner structures.
func Interlocuteurs() []partners.Interlocuteur {
	return []partners.Interlocuteur{
		{
			NomStructure: "Association Emmaüs Connect",
			CodePostal:   "75019",
			Ville:        "Paris",
			Interlocuteur1: partners.Contact{
				Nom:       "Marie Dubois",
				Email:     "marie.dubois@emmaus-connect.org",
				Telephone: "01 42 45 78 90",
			},
			DateInitiale: dates.New(2023, time.March, 15),
			DateAjout:    dates.New(2023, time.March, 15),
		},
		{
			NomStructure: "Centre Social Les Amandiers",
			CodePostal:   "75020",
			Ville:        "Paris",
			Interlocuteur1: partners.Contact{
				Nom:       "Jean Martin",
				Email:     "j.martin@amandiers.fr",
				Telephone: "01 43 66 12 34",
			},
			Interlocuteur2: &partners.Contact{
				Nom:   "Sophie Laurent",
				Email: "s.laurent@amandiers.fr",
			},
			DateInitiale:       dates.New(2023, time.June, 2),
			DateRenouvellement: dates.New(2024, time.June, 2),
			DateAjout:          dates.New(2023, time.June, 2),
		},
		{
			NomStructure: "Mission Locale de Montreuil",
			CodePostal:   "93100",
			Ville:        "Montreuil",
			Interlocuteur1: partners.Contact{
				Nom:       "Karim Benali",
				Email:     "k.benali@mission-locale-montreuil.fr",
				Telephone: "01 48 70 25 67",
			},
			DateInitiale: dates.New(2024, time.January, 10),
			DateAjout:    dates.New(2024, time.January, 10),
		},
	}
}

// Devices returns the demo devices. Interlocuteur ids reference the
// creation order of Interlocuteurs.
func Devices() []inventory.Device {
	return []inventory.Device{
		{
			Type:             inventory.DeviceTypePC,
			Marque:           "Dell",
			Modele:           "Latitude 5420",
			Annee:            2021,
			Etat:             inventory.EtatOccasion,
			NumeroSerie:      GenerateSerialNumber("Dell", 2021),
			NumeroInventaire: "abn-2024-001",
			DateAjout:        dates.New(2024, time.February, 5),
			InterlocuteurID:  1,
		},
		{
			Type:             inventory.DeviceTypePC,
			Marque:           "Lenovo",
			Modele:           "ThinkPad T480",
			Annee:            2019,
			Etat:             inventory.EtatRepare,
			NumeroSerie:      GenerateSerialNumber("Lenovo", 2019),
			NumeroInventaire: "abn-2024-002",
			DateAjout:        dates.New(2024, time.February, 12),
		},
		{
			Type:             inventory.DeviceTypePC,
			Marque:           "HP",
			Modele:           "EliteBook 840 G6",
			Annee:            2020,
			Etat:             inventory.EtatNeuf,
			NumeroSerie:      GenerateSerialNumber("HP", 2020),
			NumeroInventaire: "abn-2024-003",
			DateAjout:        dates.New(2024, time.March, 1),
			InterlocuteurID:  2,
		},
		{
			Type:             inventory.DeviceTypeSmartphone,
			Marque:           "Samsung",
			Modele:           "Galaxy A52",
			Annee:            2021,
			Etat:             inventory.EtatOccasion,
			NumeroSerie:      GenerateSerialNumber("Samsung", 2021),
			NumeroInventaire: "abn-2024-004",
			DateAjout:        dates.New(2024, time.March, 8),
			InterlocuteurID:  1,
		},
		{
			Type:             inventory.DeviceTypeSmartphone,
			Marque:           "Apple",
			Modele:           "iPhone SE 2020",
			Annee:            2020,
			Etat:             inventory.EtatEnPanne,
			NumeroSerie:      GenerateSerialNumber("Apple", 2020),
			NumeroInventaire: "abn-2024-005",
			DateAjout:        dates.New(2024, time.April, 17),
		},
	}
}

// Donations returns the demo donations. References follow the same
// creation-order convention as Devices.
func Donations() []partners.Donation {
	return []partners.Donation{
		{
			InterlocuteurID: 1,
			NomStructure:    "Association Emmaüs Connect",
			TypeAppareil:    inventory.DeviceTypePC,
			Quantite:        5,
			DateDon:         dates.New(2024, time.February, 5),
			Description:     "Renouvellement du parc bureautique",
			NumeroReference: "DON-2024-001",
		},
		{
			InterlocuteurID: 2,
			NomStructure:    "Centre Social Les Amandiers",
			TypeAppareil:    inventory.DeviceTypeSmartphone,
			Quantite:        3,
			DateDon:         dates.New(2024, time.March, 8),
			Description:     "Dotation atelier numérique",
			NumeroReference: "DON-2024-002",
		},
	}
}

// Orders returns the demo delivery orders.
func Orders() []delivery.Order {
	return []delivery.Order{
		{
			NumeroCommande:   "CMD-2024-0117",
			TypeAppareil:     delivery.OrderTypePC,
			NomStructure:     "Association Emmaüs Connect",
			Adresse:          "12 rue de Crimée",
			Ville:            "Paris",
			CodePostal:       "75019",
			NomDemandeur:     "Marie Dubois",
			ContactDemandeur: "01 42 45 78 90",
			EmailDemandeur:   "marie.dubois@emmaus-connect.org",
			DateCommande:     dates.New(2024, time.April, 22),
			Statut:           delivery.StatutEnAttente,
		},
		{
			NumeroCommande:   "CMD-2024-0123",
			TypeAppareil:     delivery.OrderTypeSmartphone,
			NomStructure:     "Mission Locale de Montreuil",
			Adresse:          "6 avenue Pasteur",
			Ville:            "Montreuil",
			CodePostal:       "93100",
			NomDemandeur:     "Karim Benali",
			ContactDemandeur: "01 48 70 25 67",
			DateCommande:     dates.New(2024, time.May, 3),
			Statut:           delivery.StatutEnAttente,
		},
	}
}

// Load writes the demo dataset through the repositories. Interlocuteurs
// go first so that devices and donations can reference their ids.
func Load(ctx context.Context, devices inventory.DeviceRepository, store partners.Store, orders delivery.OrderRepository) error {
	for _, interlocuteur := range Interlocuteurs() {
		rec := interlocuteur
		if err := store.CreateInterlocuteur(ctx, &rec); err != nil {
			return fmt.Errorf("seed interlocuteur %q: %w", rec.NomStructure, err)
		}
	}
	for _, device := range Devices() {
		rec := device
		if err := devices.Create(ctx, &rec); err != nil {
			return fmt.Errorf("seed device %q: %w", rec.NumeroInventaire, err)
		}
	}
	for _, donation := range Donations() {
		rec := donation
		if err := store.CreateDonation(ctx, &rec); err != nil {
			return fmt.Errorf("seed donation %q: %w", rec.NumeroReference, err)
		}
	}
	for _, order := range Orders() {
		rec := order
		if err := orders.Create(ctx, &rec); err != nil {
			return fmt.Errorf("seed order %q: %w", rec.NumeroCommande, err)
		}
	}
	return nil
}
