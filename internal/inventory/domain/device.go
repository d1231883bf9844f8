package inventory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"banque-numerique/internal/dates"
	"banque-numerique/internal/validation"
)

// DeviceType discriminates the two device families in stock.
type DeviceType string

const (
	DeviceTypePC         DeviceType = "PC"
	DeviceTypeSmartphone DeviceType = "Smartphone"
)

// IsValid reports whether the type is a known device family.
func (t DeviceType) IsValid() bool {
	return t == DeviceTypePC || t == DeviceTypeSmartphone
}

// Etat is the condition state of a device.
type Etat string

const (
	EtatNeuf     Etat = "Neuf"
	EtatOccasion Etat = "Occasion"
	EtatRepare   Etat = "Réparé"
	EtatEnPanne  Etat = "En panne"
	EtatLivre    Etat = "Livré"
)

// Device is one donated PC or smartphone tracked in the inventory.
// InterlocuteurID is a weak reference: it records which structure
// received the device, nothing owns anything through it.
type Device struct {
	ID               int64      `json:"id"`
	Type             DeviceType `json:"type"`
	Modele           string     `json:"modele"`
	Marque           string     `json:"marque"`
	Annee            int        `json:"annee"`
	Etat             Etat       `json:"etat"`
	NumeroSerie      string     `json:"numeroSerie"`
	NumeroInventaire string     `json:"numeroInventaire"`
	DateAjout        dates.Date `json:"dateAjout"`
	InterlocuteurID  int64      `json:"interlocuteurId,omitempty"`
}

// ValidationKind maps the device type onto a validation kind.
func (d Device) ValidationKind() validation.Kind {
	if d.Type == DeviceTypeSmartphone {
		return validation.KindSmartphone
	}
	return validation.KindPC
}

// ValidationRecord flattens the device into the shared validation
// record shape so forms and import preview classify identically.
func (d Device) ValidationRecord() validation.Record {
	rec := validation.Record{
		"marque":           d.Marque,
		"modele":           d.Modele,
		"numeroSerie":      d.NumeroSerie,
		"numeroInventaire": d.NumeroInventaire,
		"etat":             string(d.Etat),
	}
	if d.Annee != 0 {
		rec["annee"] = strconv.Itoa(d.Annee)
	}
	return rec
}

// SearchText returns the lowercase concatenation of every displayed
// field, used for free-text substring matching.
func (d Device) SearchText() string {
	parts := []string{
		string(d.Type), d.Modele, d.Marque, strconv.Itoa(d.Annee),
		string(d.Etat), d.NumeroSerie, d.NumeroInventaire, d.DateAjout.String(),
	}
	return strings.ToLower(strings.Join(parts, " "))
}

const inventoryPrefix = "abn"

// NextInventoryNumber scans the existing inventory numbers for the
// given year and returns "abn-<year>-<NNN>" with the max sequence plus
// one, starting at 001 when none exist. Deterministic for a given
// device snapshot.
func NextInventoryNumber(devices []Device, year int) string {
	prefix := fmt.Sprintf("%s-%d-", inventoryPrefix, year)
	next := 1
	for _, d := range devices {
		if !strings.HasPrefix(d.NumeroInventaire, prefix) {
			continue
		}
		seq, err := strconv.Atoi(strings.TrimPrefix(d.NumeroInventaire, prefix))
		if err != nil {
			continue
		}
		if seq+1 > next {
			next = seq + 1
		}
	}
	return fmt.Sprintf("%s%03d", prefix, next)
}

// BrandBreakdown counts devices per brand, observed brands only.
func BrandBreakdown(devices []Device) map[string]int {
	counts := make(map[string]int, len(devices))
	for _, d := range devices {
		counts[d.Marque]++
	}
	return counts
}

// Brands lists observed brands in lexical order.
func Brands(devices []Device) []string {
	byBrand := BrandBreakdown(devices)
	brands := make([]string, 0, len(byBrand))
	for brand := range byBrand {
		brands = append(brands, brand)
	}
	sort.Strings(brands)
	return brands
}

// DeviceRepository manages device persistence. List returns devices in
// insertion order; Create assigns the identity.
type DeviceRepository interface {
	Get(ctx context.Context, id int64) (*Device, error)
	List(ctx context.Context) ([]Device, error)
	Create(ctx context.Context, device *Device) error
	Update(ctx context.Context, device *Device) error
	Delete(ctx context.Context, id int64) error
}
