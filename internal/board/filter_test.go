package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

var boardLeads = []entity.Lead{
	{ID: "1", Name: "Maria Souza", Email: "maria@acme.com.br", Status: entity.StageProspect},
	{ID: "2", Name: "João Lima", Email: "", Status: entity.StageContact},
	{ID: "3", Name: "Ana Costa", Email: "ana@MARIADB.org", Status: entity.StageWon},
	{ID: "4", Name: "Pedro", Email: "pedro@acme.com.br", Status: entity.StageContact},
}

func ids(leads []entity.Lead) []string {
	out := []string{}
	for _, l := range leads {
		out = append(out, l.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name  string
		query Query
		want  []string
	}{
		{"empty query keeps all", Query{}, []string{"1", "2", "3", "4"}},
		{"sentinel keeps all", Query{Status: AllStatuses}, []string{"1", "2", "3", "4"}},
		{"name match is case-insensitive", Query{Search: "MARIA"}, []string{"1", "3"}},
		{"email match", Query{Search: "acme"}, []string{"1", "4"}},
		{"status exact", Query{Status: "Contato"}, []string{"2", "4"}},
		{"status is case-sensitive", Query{Status: "contato"}, []string{}},
		{"search and status combine", Query{Search: "acme", Status: "Contato"}, []string{"4"}},
		{"no match", Query{Search: "zzz"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(boardLeads, tt.query)))
		})
	}
}

func TestFilterDoesNotTouchInput(t *testing.T) {
	in := append([]entity.Lead(nil), boardLeads...)
	Filter(in, Query{Search: "maria", Status: "Prospect"})
	assert.Equal(t, boardLeads, in)
}

func TestColumnsFollowPipelineOrder(t *testing.T) {
	leads := append([]entity.Lead{{ID: "x", Status: "Arquivado"}}, boardLeads...)

	cols := Columns(entity.PipelineStages, leads)

	assert.Len(t, cols, 5)
	assert.Equal(t, entity.StageProspect, cols[0].Stage)
	assert.Equal(t, "Em Contato", cols[1].Title)
	assert.Equal(t, []string{"2", "4"}, ids(cols[1].Leads))
	assert.Equal(t, 0, cols[2].Count())
	assert.NotNil(t, cols[2].Leads)
	assert.Equal(t, []string{"3"}, ids(cols[3].Leads))
}

func TestBoardViewAppliesQuery(t *testing.T) {
	b := New(new(MockLeadStore), new(MockInteractionLog))
	b.Load(boardLeads)

	cols := b.View(Query{Search: "acme"})

	assert.Equal(t, []string{"1"}, ids(cols[0].Leads))
	assert.Equal(t, []string{"4"}, ids(cols[1].Leads))
}

func TestLogNotifierLevels(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	n := LogNotifier{Logger: zap.New(core)}

	n.Notify(Notification{Severity: SeveritySuccess, Title: "ok"})
	n.Notify(Notification{Severity: SeverityWarning, Title: "hmm"})
	n.Notify(Notification{Severity: SeverityError, Title: "bad", Description: "detail"})

	entries := logs.All()
	assert.Len(t, entries, 3)
	assert.Equal(t, zap.InfoLevel, entries[0].Level)
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
	assert.Equal(t, zap.ErrorLevel, entries[2].Level)
	assert.Equal(t, "detail", entries[2].ContextMap()["description"])
}

func TestMultiNotifierSkipsNil(t *testing.T) {
	a, b := &Recorder{}, &Recorder{}
	var calls int
	m := MultiNotifier{a, nil, b, NotifierFunc(func(Notification) { calls++ })}

	m.Notify(Notification{Severity: SeverityWarning})

	assert.Len(t, a.All(), 1)
	assert.Len(t, b.All(), 1)
	assert.Equal(t, 1, calls)
}
