package interfaces

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	importer "banque-numerique/internal/importer/domain"
	inventory "banque-numerique/internal/inventory/domain"
	partners "banque-numerique/internal/partners/domain"
	"banque-numerique/internal/validation"
)

// ParseDevicesXLSX reads the first sheet of an uploaded workbook into
// raw records. Row one is the header; header names map directly onto
// validation record keys (marque, modele, numeroSerie, ...). The
// "type" column selects PC or Smartphone, defaulting to PC.
func ParseDevicesXLSX(r io.Reader) ([]importer.RawRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("import xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("import xlsx: no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("import xlsx: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	header := rows[0]
	var records []importer.RawRecord
	for _, row := range rows[1:] {
		fields := validation.Record{}
		empty := true
		for i, name := range header {
			if name == "" || i >= len(row) {
				continue
			}
			value := row[i]
			if value != "" {
				empty = false
			}
			fields[name] = value
		}
		if empty {
			continue
		}
		kind := validation.KindPC
		if fields["type"] == string(validation.KindSmartphone) {
			kind = validation.KindSmartphone
		}
		delete(fields, "type")
		records = append(records, importer.RawRecord{Type: kind, Fields: fields})
	}
	return records, nil
}

// BuildDevicesXLSX renders the device collection as a workbook.
func BuildDevicesXLSX(devices []inventory.Device) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "appareils"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"id", "type", "marque", "modele", "annee", "etat", "numeroSerie", "numeroInventaire", "dateAjout", "interlocuteurId"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	for row, d := range devices {
		values := []any{
			d.ID, string(d.Type), d.Marque, d.Modele, d.Annee, string(d.Etat),
			d.NumeroSerie, d.NumeroInventaire, d.DateAjout.String(), d.InterlocuteurID,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheet, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildInterlocuteursXLSX renders the structure collection as a
// workbook.
func BuildInterlocuteursXLSX(interlocuteurs []partners.Interlocuteur) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "interlocuteurs"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"id", "nomStructure", "codePostal", "ville", "interlocuteur1.nom", "interlocuteur1.email", "interlocuteur1.telephone", "interlocuteur2.nom", "dateInitiale", "dateRenouvellement", "dateAjout"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	for row, rec := range interlocuteurs {
		contact2 := ""
		if rec.Interlocuteur2 != nil {
			contact2 = rec.Interlocuteur2.Nom
		}
		values := []any{
			rec.ID, rec.NomStructure, rec.CodePostal, rec.Ville,
			rec.Interlocuteur1.Nom, rec.Interlocuteur1.Email, rec.Interlocuteur1.Telephone,
			contact2, rec.DateInitiale.String(), rec.DateRenouvellement.String(), rec.DateAjout.String(),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheet, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
