package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionCanAccess(t *testing.T) {
	consultation := &Consultation{ID: "c1", MedicoID: "medico-1"}

	t.Run("owner can access", func(t *testing.T) {
		session := &Session{UserID: "medico-1", Role: RoleMedico}
		assert.True(t, session.CanAccess(consultation))
	})

	t.Run("other medico cannot access", func(t *testing.T) {
		session := &Session{UserID: "medico-2", Role: RoleMedico}
		assert.False(t, session.CanAccess(consultation))
	})

	t.Run("admin can access any consultation", func(t *testing.T) {
		session := &Session{UserID: "admin-1", Role: RoleAdmin}
		assert.True(t, session.CanAccess(consultation))
	})
}
