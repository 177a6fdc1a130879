package audit

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/afritrim-api/internal/db/dbtest"
	"github.com/BruksfildServices01/afritrim-api/internal/models"
)

func TestDispatcherPersistsEvents(t *testing.T) {
	db := dbtest.Open(t)
	d := NewDispatcher(New(db), zerolog.Nop())

	id := uint(7)
	ctx := WithActor(context.Background(), "admin-uid")
	d.DispatchCtx(ctx, Event{
		Action:   "invoice_paid",
		Entity:   "invoice",
		EntityID: &id,
		Metadata: map[string]any{"amount": 200},
	})
	d.Close()

	var logs []models.AuditLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, "admin-uid", logs[0].ActorUID)
	assert.Equal(t, "invoice_paid", logs[0].Action)
	assert.JSONEq(t, `{"amount":200}`, logs[0].Metadata)
}

func TestNopDispatcher(t *testing.T) {
	d := NewNop()
	assert.NotPanics(t, func() {
		d.Dispatch(Event{Action: "x"})
		d.Close()
	})

	var nilDispatcher *Dispatcher
	assert.NotPanics(t, func() { nilDispatcher.Dispatch(Event{Action: "x"}) })
}

func TestActorFromEmptyContext(t *testing.T) {
	assert.Equal(t, "", ActorFrom(context.Background()))
}
