// Package stats derives counts, breakdowns and percentages from the
// full entity collections. Everything here is pure and recomputed from
// scratch on every call: the collections are small and UI-refresh
// driven, so no incremental maintenance is worth its complexity.
package stats

import (
	"math"

	inventory "banque-numerique/internal/inventory/domain"
	partners "banque-numerique/internal/partners/domain"
)

// Summary is the overview computed from the device and interlocuteur
// collections. Breakdown maps carry observed keys only; states or
// brands with zero devices simply do not appear.
type Summary struct {
	TotalDevices                 int            `json:"totalDevices"`
	TotalPCs                     int            `json:"totalPCs"`
	TotalSmartphones             int            `json:"totalSmartphones"`
	TotalInterlocuteurs          int            `json:"totalInterlocuteurs"`
	DevicesByState               map[string]int `json:"devicesByState"`
	DevicesByBrand               map[string]int `json:"devicesByBrand"`
	DevicesByYear                map[int]int    `json:"devicesByYear"`
	DevicesWithInterlocuteurs    int            `json:"devicesWithInterlocuteurs"`
	DevicesWithoutInterlocuteurs int            `json:"devicesWithoutInterlocuteurs"`
}

// Compute builds the summary in a single pass per collection.
func Compute(devices []inventory.Device, interlocuteurs []partners.Interlocuteur) Summary {
	summary := Summary{
		TotalDevices:        len(devices),
		TotalInterlocuteurs: len(interlocuteurs),
		DevicesByState:      make(map[string]int),
		DevicesByBrand:      make(map[string]int),
		DevicesByYear:       make(map[int]int),
	}
	for _, d := range devices {
		switch d.Type {
		case inventory.DeviceTypePC:
			summary.TotalPCs++
		case inventory.DeviceTypeSmartphone:
			summary.TotalSmartphones++
		}
		summary.DevicesByState[string(d.Etat)]++
		summary.DevicesByBrand[d.Marque]++
		summary.DevicesByYear[d.Annee]++
		if d.InterlocuteurID != 0 {
			summary.DevicesWithInterlocuteurs++
		} else {
			summary.DevicesWithoutInterlocuteurs++
		}
	}
	return summary
}

// Percentage returns count/total as a percentage rounded to one
// decimal. A zero total yields 0 rather than NaN or Infinity.
func Percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*1000) / 10
}

// StatePercentages maps each observed state to its share of the total.
func (s Summary) StatePercentages() map[string]float64 {
	result := make(map[string]float64, len(s.DevicesByState))
	for state, count := range s.DevicesByState {
		result[state] = Percentage(count, s.TotalDevices)
	}
	return result
}

// BrandPercentages maps each observed brand to its share of the total.
func (s Summary) BrandPercentages() map[string]float64 {
	result := make(map[string]float64, len(s.DevicesByBrand))
	for brand, count := range s.DevicesByBrand {
		result[brand] = Percentage(count, s.TotalDevices)
	}
	return result
}

// DonationRollup sums donated quantities for one structure, split by
// device family.
type DonationRollup struct {
	PCs         int `json:"pcs"`
	Smartphones int `json:"smartphones"`
	Total       int `json:"total"`
}

// DonationsByInterlocuteur groups donation quantities by structure.
func DonationsByInterlocuteur(donations []partners.Donation) map[int64]DonationRollup {
	result := make(map[int64]DonationRollup)
	for _, d := range donations {
		rollup := result[d.InterlocuteurID]
		switch d.TypeAppareil {
		case inventory.DeviceTypePC:
			rollup.PCs += d.Quantite
		case inventory.DeviceTypeSmartphone:
			rollup.Smartphones += d.Quantite
		}
		rollup.Total += d.Quantite
		result[d.InterlocuteurID] = rollup
	}
	return result
}

// DevicesForInterlocuteur lists the devices recorded against one
// structure, preserving collection order.
func DevicesForInterlocuteur(devices []inventory.Device, interlocuteurID int64) []inventory.Device {
	matched := make([]inventory.Device, 0)
	for _, d := range devices {
		if d.InterlocuteurID == interlocuteurID {
			matched = append(matched, d)
		}
	}
	return matched
}
