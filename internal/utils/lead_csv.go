package utils

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/devpaiola/cadastroLead/internal/models"
)

// CSVTimeLayout is the Data_Cadastro format of the lead ledger CSV.
const CSVTimeLayout = "2006-01-02 15:04:05"

// CSVHeader is the header row of the lead ledger CSV.
var CSVHeader = []string{"Nome", "Email", "Telefone", "Referencia", "Data_Cadastro"}

// WriteLeadsCSV writes leads with a header row.
func WriteLeadsCSV(w io.Writer, leads []*models.Lead) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, l := range leads {
		row := []string{l.Nome, l.Email, l.Telefone, l.Referencia, l.DataCadastro.Local().Format(CSVTimeLayout)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write lead %s: %w", l.Email, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ImportResult reports what ReadLeadsCSV accepted and which rows it skipped.
type ImportResult struct {
	Leads   []*models.Lead
	Skipped []string
}

// ReadLeadsCSV parses a lead ledger CSV. Columns are located by header name,
// so extra or reordered columns are tolerated. Rows missing a name, e-mail or
// phone are skipped and reported. Timestamps are read in loc.
func ReadLeadsCSV(r io.Reader, loc *time.Location) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("CSV file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	nameIdx := findColumnIndex(header, []string{"Nome", "Name"})
	emailIdx := findColumnIndex(header, []string{"Email", "E-mail"})
	phoneIdx := findColumnIndex(header, []string{"Telefone", "Phone"})
	refIdx := findColumnIndex(header, []string{"Referencia", "Referência", "Reference"})
	dateIdx := findColumnIndex(header, []string{"Data_Cadastro", "Data Cadastro", "Date"})
	if nameIdx == -1 || emailIdx == -1 || phoneIdx == -1 {
		return nil, errors.New("CSV header must name Nome, Email and Telefone columns")
	}

	result := &ImportResult{}
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read line %d: %w", line, err)
		}

		lead := &models.Lead{
			Nome:       column(record, nameIdx),
			Email:      column(record, emailIdx),
			Telefone:   column(record, phoneIdx),
			Referencia: column(record, refIdx),
		}
		if lead.Nome == "" || lead.Email == "" || lead.Telefone == "" {
			result.Skipped = append(result.Skipped, fmt.Sprintf("line %d: missing required field", line))
			continue
		}
		if raw := column(record, dateIdx); raw != "" {
			ts, err := time.ParseInLocation(CSVTimeLayout, raw, loc)
			if err != nil {
				result.Skipped = append(result.Skipped, fmt.Sprintf("line %d: invalid Data_Cadastro %q", line, raw))
				continue
			}
			lead.DataCadastro = ts
		}
		result.Leads = append(result.Leads, lead)
	}
	return result, nil
}

func column(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// findColumnIndex finds the index of a column by any of its accepted names
func findColumnIndex(header []string, possibleNames []string) int {
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		for _, name := range possibleNames {
			if strings.ToLower(name) == h {
				return i
			}
		}
	}
	return -1
}
