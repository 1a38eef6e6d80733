package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/stagehand/internal/domain"
)

func TestConvert_ResolvesTypeRefs(t *testing.T) {
	schema := validMinimalSchema()
	bundle, err := Convert(schema)
	require.NoError(t, err)

	require.Len(t, bundle.PhaseTypes, 1)
	require.Len(t, bundle.Vehicles, 1)
	require.Len(t, bundle.Crew, 1)
	require.Len(t, bundle.Events, 1)
	require.Len(t, bundle.Phases, 1)

	phase := bundle.Phases[0]
	assert.Equal(t, bundle.PhaseTypes[0].ID, phase.PhaseTypeID, "type_ref resolves to the minted type id")
	assert.Equal(t, bundle.Events[0].ID, phase.EventID, "phase belongs to its declaring event")
	assert.NotEmpty(t, phase.ID)
	assert.NotEqual(t, phase.ID, bundle.Events[0].ID)
}

func TestConvert_ParsesWindows(t *testing.T) {
	schema := validMinimalSchema()
	bundle, err := Convert(schema)
	require.NoError(t, err)

	want := time.Date(2026, 6, 1, 18, 0, 0, 0, time.Local)
	assert.Equal(t, want, bundle.Events[0].StartTime)
	assert.Equal(t, want, bundle.Phases[0].StartTime)
	assert.True(t, bundle.Events[0].EndTime.After(bundle.Events[0].StartTime))
}

func TestConvert_DefaultsStatusAndOrder(t *testing.T) {
	schema := validMinimalSchema()
	schema.Events[0].Phases = append(schema.Events[0].Phases, PhaseImport{
		TypeRef: "pt-show", Name: "Teardown",
		Start: "2026-06-01 23:00", End: "2026-06-02 01:00",
	})

	bundle, err := Convert(schema)
	require.NoError(t, err)

	assert.Equal(t, domain.EventPlanned, bundle.Events[0].Status)
	require.Len(t, bundle.Phases, 2)
	assert.Equal(t, 1, bundle.Phases[0].SequenceOrder, "order defaults to declaration position")
	assert.Equal(t, 2, bundle.Phases[1].SequenceOrder)
}

func TestConvert_UnknownTypeRef(t *testing.T) {
	schema := validMinimalSchema()
	schema.Events[0].Phases[0].TypeRef = "pt-missing"

	_, err := Convert(schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `type_ref "pt-missing" not found`)
}
