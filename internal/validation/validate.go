package validation

// Kind discriminates record shapes submitted for validation.
type Kind string

const (
	KindPC            Kind = "PC"
	KindSmartphone    Kind = "Smartphone"
	KindInterlocuteur Kind = "Interlocuteur"
)

// Status classifies a validation outcome.
type Status string

const (
	StatusValid   Status = "valid"
	StatusWarning Status = "warning"
	StatusError   Status = "error"
)

// Record is a flat field map. Nested contact fields use dotted keys,
// e.g. "interlocuteur1.nom".
type Record map[string]string

// Report is the outcome of validating one record. Errors block
// acceptance, warnings do not.
type Report struct {
	Status   Status   `json:"status"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// Validate applies the per-kind field rules and classifies the record.
// It is pure: identical input records yield identical reports. Both the
// import preview and the live CRUD services go through this function.
func Validate(rec Record, kind Kind) Report {
	errs := []string{}
	warns := []string{}

	switch kind {
	case KindPC, KindSmartphone:
		if rec["marque"] == "" {
			errs = append(errs, "Marque manquante")
		}
		if rec["modele"] == "" {
			errs = append(errs, "Modèle manquant")
		}
		if rec["numeroSerie"] == "" {
			errs = append(errs, "Numéro de série manquant")
		}
		if rec["numeroInventaire"] == "" {
			warns = append(warns, "Numéro d'inventaire recommandé")
		}
		if rec["etat"] == "" {
			warns = append(warns, "État non spécifié")
		}
	case KindInterlocuteur:
		if rec["nomStructure"] == "" {
			errs = append(errs, "Nom de structure manquant")
		}
		if rec["ville"] == "" {
			errs = append(errs, "Ville manquante")
		}
		if rec["interlocuteur1.nom"] == "" {
			errs = append(errs, "Interlocuteur principal manquant")
		}
		if rec["interlocuteur1.email"] == "" {
			warns = append(warns, "Email de l'interlocuteur principal recommandé")
		}
	}

	status := StatusValid
	if len(warns) > 0 {
		status = StatusWarning
	}
	if len(errs) > 0 {
		status = StatusError
	}
	return Report{Status: status, Errors: errs, Warnings: warns}
}

// Error carries a failed validation report across layers.
type Error struct {
	Report Report
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil || len(e.Report.Errors) == 0 {
		return "validation failed"
	}
	msg := "validation failed: " + e.Report.Errors[0]
	if len(e.Report.Errors) > 1 {
		msg += " (…)"
	}
	return msg
}
