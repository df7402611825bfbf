package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipelineStagesOrder(t *testing.T) {
	assert.Equal(t,
		[]Stage{StageProspect, StageContact, StageProposal, StageWon, StageLost},
		PipelineStages.Stages())
	assert.Equal(t, "Proposta Enviada", PipelineStages.Title(StageProposal))
	assert.Equal(t, "Arquivado", PipelineStages.Title("Arquivado"))
}

func TestStageSetNavigation(t *testing.T) {
	next, ok := PipelineStages.Next(StageProspect)
	assert.True(t, ok)
	assert.Equal(t, StageContact, next)

	_, ok = PipelineStages.Next(StageLost)
	assert.False(t, ok)

	prev, ok := PipelineStages.Prev(StageWon)
	assert.True(t, ok)
	assert.Equal(t, StageProposal, prev)

	_, ok = PipelineStages.Prev(StageProspect)
	assert.False(t, ok)
	_, ok = PipelineStages.Prev("Arquivado")
	assert.False(t, ok)
}

func TestNewStageSetDropsDuplicates(t *testing.T) {
	s := NewStageSet(StageDef{"a", "A"}, StageDef{"b", "B"}, StageDef{"a", "again"})
	assert.Equal(t, []Stage{"a", "b"}, s.Stages())
	assert.Equal(t, "A", s.Title("a"))
}

func TestParseStage(t *testing.T) {
	st, err := ParseStage("Ganho")
	require.NoError(t, err)
	assert.Equal(t, StageWon, st)

	_, err = ParseStage("ganho")
	assert.ErrorIs(t, err, ErrInvalidStage)
}

func TestNewLeadDefaultsAndValidation(t *testing.T) {
	l, err := NewLead("user-1", "  Maria  ", "")
	require.NoError(t, err)
	assert.Equal(t, "Maria", l.Name)
	assert.Equal(t, StageProspect, l.Status)
	assert.NotEmpty(t, l.ID)

	_, err = NewLead("user-1", " ", StageWon)
	assert.EqualError(t, err, "nome é obrigatório")

	_, err = NewLead("user-1", "Maria", "Arquivado")
	assert.ErrorIs(t, err, ErrInvalidStage)

	_, err = NewLead("", "Maria", StageWon)
	assert.Error(t, err)
}

func TestStageChangeInteractionContent(t *testing.T) {
	in := NewStageChangeInteraction("lead-1", StageProspect, StageContact)
	assert.Equal(t, "StageChange", in.Type)
	assert.Equal(t, `Status changed from "Prospect" to "Contato".`, in.Content)
	assert.Equal(t, "lead-1", in.LeadID)
}

func TestWithStatusCopies(t *testing.T) {
	l := Lead{ID: "1", Status: StageProspect}
	moved := l.WithStatus(StageWon)
	assert.Equal(t, StageProspect, l.Status)
	assert.Equal(t, StageWon, moved.Status)
}
