package services

import (
	"context"
	"testing"

	"github.com/lonsystemskt/evento-card-gestor-92/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNoteService(t *testing.T) {
	ctx := context.Background()
	store := newFlakyStore()
	service := NewNoteService(store, testCalendar(t), zap.NewNop())
	require.NoError(t, service.Load(ctx))

	first, err := service.AddNote(ctx, CreateNoteInput{Subject: "Ligar fornecedor", PriorityDate: day(t, 2024, 6, 9)})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultNoteOwner, first.Owner)

	second, err := service.AddNote(ctx, CreateNoteInput{Subject: "Revisar contrato", PriorityDate: day(t, 2024, 6, 6), Owner: models.OwnerKalil})
	require.NoError(t, err)

	_, err = service.AddNote(ctx, CreateNoteInput{Subject: "x", Owner: "Someone"})
	assert.ErrorIs(t, err, ErrInvalidOwner)
	_, err = service.AddNote(ctx, CreateNoteInput{Subject: "  "})
	assert.ErrorIs(t, err, ErrSubjectRequired)

	all := service.GetAllNotes()
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID, "soonest priority date first")

	kalil := service.GetNotesByOwner(models.OwnerKalil)
	require.Len(t, kalil, 1)
	assert.Equal(t, "Revisar contrato", kalil[0].Subject)

	updated, err := service.UpdateNote(ctx, first.ID, UpdateNoteInput{Owner: ptr(models.OwnerKalil)})
	require.NoError(t, err)
	assert.Equal(t, models.OwnerKalil, updated.Owner)
	assert.Len(t, service.GetNotesByOwner(models.OwnerKalil), 2)
	assert.Empty(t, service.GetNotesByOwner(models.OwnerThiago))

	bad := models.NoteOwner("Nobody")
	_, err = service.UpdateNote(ctx, first.ID, UpdateNoteInput{Owner: &bad})
	assert.ErrorIs(t, err, ErrInvalidOwner)

	require.NoError(t, service.DeleteNote(ctx, first.ID))
	_, err = service.GetNote(first.ID)
	assert.ErrorIs(t, err, ErrNoteNotFound)
	assert.ErrorIs(t, service.DeleteNote(ctx, first.ID), ErrNoteNotFound)

	reloaded := NewNoteService(store, testCalendar(t), zap.NewNop())
	require.NoError(t, reloaded.Load(ctx))
	assert.Len(t, reloaded.GetAllNotes(), 1)
}
