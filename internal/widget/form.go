package widget

import (
	"fmt"
	"strings"
)

// Registrant is the person who signs up before referring others.
type Registrant struct {
	Name  string `json:"nome"`
	Email string `json:"email"`
	Phone string `json:"telefone"`
}

// Trimmed returns r with surrounding whitespace removed from every field.
func (r Registrant) Trimmed() Registrant {
	return Registrant{
		Name:  strings.TrimSpace(r.Name),
		Email: strings.TrimSpace(r.Email),
		Phone: strings.TrimSpace(r.Phone),
	}
}

// Validate reports every empty field of the registration form.
func (r Registrant) Validate() error {
	r = r.Trimmed()
	var missing []string
	if r.Name == "" {
		missing = append(missing, "nome")
	}
	if r.Email == "" {
		missing = append(missing, "email")
	}
	if r.Phone == "" {
		missing = append(missing, "telefone")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing, Message: "Todos os campos são obrigatórios"}
	}
	return nil
}

// Lead is a third party referred by the registrant in the wheel widget.
type Lead struct {
	Name  string `json:"nome"`
	Email string `json:"email"`
	Phone string `json:"telefone"`
}

func (l Lead) trimmed() Lead {
	return Lead{
		Name:  strings.TrimSpace(l.Name),
		Email: strings.TrimSpace(l.Email),
		Phone: strings.TrimSpace(l.Phone),
	}
}

// Empty reports whether no field of the row was filled.
func (l Lead) Empty() bool {
	l = l.trimmed()
	return l.Name == "" && l.Email == "" && l.Phone == ""
}

// missing lists the empty fields of lead row n (1-based) using the form's field ids.
func (l Lead) missing(n int) []string {
	l = l.trimmed()
	var fields []string
	if l.Name == "" {
		fields = append(fields, fmt.Sprintf("nome-lead-%d", n))
	}
	if l.Email == "" {
		fields = append(fields, fmt.Sprintf("email-lead-%d", n))
	}
	if l.Phone == "" {
		fields = append(fields, fmt.Sprintf("telefone-lead-%d", n))
	}
	return fields
}

// CollectLeads returns the complete rows of a lead form. Rows that are partly
// filled are rejected, and at least min complete rows are required.
func CollectLeads(rows []Lead, min int) ([]Lead, error) {
	var (
		complete []Lead
		partial  []string
	)
	for i, row := range rows {
		if row.Empty() {
			continue
		}
		if fields := row.missing(i + 1); len(fields) > 0 {
			partial = append(partial, fields...)
			continue
		}
		complete = append(complete, row.trimmed())
	}
	if len(partial) > 0 {
		return nil, &ValidationError{Fields: partial, Message: "Preencha todos os campos dos leads informados"}
	}
	if len(complete) < min {
		var fields []string
		for i := len(complete); i < min && i < len(rows); i++ {
			fields = append(fields, rows[i].missing(i+1)...)
		}
		return nil, &ValidationError{
			Fields:  fields,
			Message: fmt.Sprintf("É necessário cadastrar pelo menos %d leads", min),
		}
	}
	return complete, nil
}

// ReferralEntry is a referred contact in the lamp widget.
type ReferralEntry struct {
	Name  string `json:"nome"`
	Phone string `json:"telefone"`
}

// ValidateReferrals requires every one of the entries to carry a name and a phone.
func ValidateReferrals(entries []ReferralEntry) error {
	var missing []string
	for i, e := range entries {
		if strings.TrimSpace(e.Name) == "" {
			missing = append(missing, fmt.Sprintf("nome-indicado-%d", i+1))
		}
		if strings.TrimSpace(e.Phone) == "" {
			missing = append(missing, fmt.Sprintf("telefone-indicado-%d", i+1))
		}
	}
	if len(missing) > 0 {
		return &ValidationError{
			Fields:  missing,
			Message: fmt.Sprintf("Indique %d pessoas com nome e telefone", len(entries)),
		}
	}
	return nil
}
