package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReferenceRegistrant marks a ledger row that belongs to a registrant rather
// than to a referred lead.
const ReferenceRegistrant = "CADASTRADOR"

// Lead is one row of the lead ledger. Registrants are stored here too, with
// Referencia set to ReferenceRegistrant; referred leads carry the registrant's name.
type Lead struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Nome         string             `bson:"nome" json:"nome"`
	Email        string             `bson:"email" json:"email"`
	Telefone     string             `bson:"telefone" json:"telefone"`
	Referencia   string             `bson:"referencia" json:"referencia"`
	DataCadastro time.Time          `bson:"dataCadastro" json:"dataCadastro"`
}

// IsRegistrant reports whether l is a registrant row.
func (l *Lead) IsRegistrant() bool { return l.Referencia == ReferenceRegistrant }

// Contact is the public view of a ledger row returned by the API.
type Contact struct {
	Nome     string `json:"nome"`
	Email    string `json:"email"`
	Telefone string `json:"telefone"`
}

func (l *Lead) Contact() Contact {
	return Contact{Nome: l.Nome, Email: l.Email, Telefone: l.Telefone}
}

// LeadStats summarises the ledger.
type LeadStats struct {
	TotalLeads         int64 `json:"total_leads"`
	TotalCadastradores int64 `json:"total_cadastradores"`
	LeadsReferenciados int64 `json:"leads_referenciados"`
	TotalSorteios      int64 `json:"total_sorteios"`
}
