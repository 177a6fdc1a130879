package db_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/afritrim-api/internal/db/dbtest"
	"github.com/BruksfildServices01/afritrim-api/internal/models"
)

func TestMigrateCreatesIndexes(t *testing.T) {
	gdb := dbtest.Open(t)
	m := gdb.Migrator()

	for _, name := range []string{
		"idx_audit_shop_created",
		"idx_audit_actor_created",
		"idx_audit_entity",
		"idx_audit_action",
	} {
		assert.True(t, m.HasIndex(&models.AuditLog{}, name), name)
	}
	assert.True(t, m.HasIndex(&models.Appointment{}, "uniq_appointment_barber_slot"))
}
