package models

import "time"

type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleMedico Role = "MEDICO"
)

type User struct {
	ID             string     `bson:"_id,omitempty"`
	Email          string     `bson:"email"`
	Password       string     `bson:"password"`
	Nome           string     `bson:"nome"`
	CPF            string     `bson:"cpf"`
	CRM            string     `bson:"crm"`
	DataNascimento *time.Time `bson:"dataNascimento,omitempty"`
	Role           Role       `bson:"role"`
	CreatedAt      time.Time  `bson:"createdAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsMedico() bool {
	return u.Role == RoleMedico
}
