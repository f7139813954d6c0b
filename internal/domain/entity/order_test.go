package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Máquina de estados de la orden:
//
//	pending → confirmed → completed
//	cualquier estado → cancelled (completed incluido: cancelación compensatoria)
//	cancelled es terminal absoluto
// ──────────────────────────────────────────────────────────────────────────────

func TestCanTransition_FlujoNormal(t *testing.T) {
	assert.True(t, entity.CanTransition(entity.OrderStatusPending, entity.OrderStatusConfirmed))
	assert.True(t, entity.CanTransition(entity.OrderStatusConfirmed, entity.OrderStatusCompleted))
}

func TestCanTransition_CancelacionDesdeCualquierEstado(t *testing.T) {
	assert.True(t, entity.CanTransition(entity.OrderStatusPending, entity.OrderStatusCancelled))
	assert.True(t, entity.CanTransition(entity.OrderStatusConfirmed, entity.OrderStatusCancelled))
	assert.True(t, entity.CanTransition(entity.OrderStatusCompleted, entity.OrderStatusCancelled))
}

func TestCanTransition_NoSePuedeSaltarEstados(t *testing.T) {
	assert.False(t, entity.CanTransition(entity.OrderStatusPending, entity.OrderStatusCompleted),
		"pending no puede saltar directo a completed")
}

func TestCanTransition_NoSePuedeRetroceder(t *testing.T) {
	assert.False(t, entity.CanTransition(entity.OrderStatusConfirmed, entity.OrderStatusPending))
	assert.False(t, entity.CanTransition(entity.OrderStatusCompleted, entity.OrderStatusConfirmed))
	assert.False(t, entity.CanTransition(entity.OrderStatusCompleted, entity.OrderStatusPending))
}

func TestCanTransition_CancelledEsTerminal(t *testing.T) {
	for _, to := range []string{
		entity.OrderStatusPending,
		entity.OrderStatusConfirmed,
		entity.OrderStatusCompleted,
		entity.OrderStatusCancelled,
	} {
		assert.False(t, entity.CanTransition(entity.OrderStatusCancelled, to),
			"cancelled no admite transición a %s", to)
	}
}

func TestCanTransition_MismoEstadoNoEsTransicion(t *testing.T) {
	assert.False(t, entity.CanTransition(entity.OrderStatusPending, entity.OrderStatusPending))
	assert.False(t, entity.CanTransition(entity.OrderStatusCompleted, entity.OrderStatusCompleted))
}

func TestValidStatus(t *testing.T) {
	assert.True(t, entity.ValidStatus(entity.OrderStatusPending))
	assert.True(t, entity.ValidStatus(entity.OrderStatusConfirmed))
	assert.True(t, entity.ValidStatus(entity.OrderStatusCompleted))
	assert.True(t, entity.ValidStatus(entity.OrderStatusCancelled))
	assert.False(t, entity.ValidStatus("shipped"))
	assert.False(t, entity.ValidStatus(""))
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, entity.IsTerminal(entity.OrderStatusCancelled))
	assert.False(t, entity.IsTerminal(entity.OrderStatusCompleted),
		"completed aún admite cancelación compensatoria")
	assert.False(t, entity.IsTerminal(entity.OrderStatusPending))
}
