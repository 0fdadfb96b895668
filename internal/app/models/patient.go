package models

import "time"

type Sexo string

const (
	SexoMasculino Sexo = "MASCULINO"
	SexoFeminino  Sexo = "FEMININO"
	SexoOutro     Sexo = "OUTRO"
)

// Patient is keyed by CPF: at most one document per CPF exists, enforced by a
// unique index plus an atomic find-or-insert in the registry.
type Patient struct {
	ID             string     `bson:"_id,omitempty"`
	Nome           string     `bson:"nome"`
	CPF            string     `bson:"cpf"`
	Sexo           Sexo       `bson:"sexo"`
	DataNascimento *time.Time `bson:"dataNascimento,omitempty"`
	CreatedAt      time.Time  `bson:"createdAt"`
}
