package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/stagehand/internal/domain"
	"github.com/alexanderramin/stagehand/internal/repository"
	"github.com/alexanderramin/stagehand/internal/service"
	"github.com/alexanderramin/stagehand/internal/testutil"
	"github.com/alexanderramin/stagehand/internal/timeline"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailabilityCheckFindsCrossEventBooking(t *testing.T) {
	ctx := context.Background()
	database := testutil.NewTestDB(t)
	events := repository.NewSQLiteEventRepo(database)
	vehicles := repository.NewSQLiteVehicleRepo(database)
	assigns := repository.NewSQLiteAssignmentRepo(database)
	svc := service.NewAvailabilityService(assigns, zerolog.Nop())

	gala := testutil.NewTestEvent("Gala")
	fair := testutil.NewTestEvent("Fair")
	require.NoError(t, events.Create(ctx, gala))
	require.NoError(t, events.Create(ctx, fair))

	van := testutil.NewTestVehicle("Van 2")
	require.NoError(t, vehicles.Create(ctx, van))

	now := time.Now().UTC()
	booking := &domain.VehicleAssignment{
		ID:            uuid.New().String(),
		PhaseID:       uuid.New().String(),
		EventID:       fair.ID,
		VehicleID:     van.ID,
		AssignedStart: testutil.TestEventStart,
		AssignedEnd:   testutil.TestEventEnd,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, assigns.Upsert(ctx, booking))

	window := timeline.Window{
		Start: testutil.TestEventStart.Add(2 * time.Hour),
		End:   testutil.TestEventEnd.Add(2 * time.Hour),
	}
	conflicts, err := svc.Check(ctx, van.ID, window, gala.ID)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, booking.ID, conflicts[0].ID)

	// The booking's own event is never a conflict with itself.
	conflicts, err = svc.Check(ctx, van.ID, window, fair.ID)
	require.NoError(t, err)
	assert.Empty(t, conflicts)

	// A window touching the booking's edge is free: intervals are
	// half-open.
	adjacent := timeline.Window{
		Start: testutil.TestEventEnd,
		End:   testutil.TestEventEnd.Add(time.Hour),
	}
	conflicts, err = svc.Check(ctx, van.ID, adjacent, gala.ID)
	require.NoError(t, err)
	assert.Empty(t, conflicts)
}

func TestAvailabilityCheckWrapsStoreErrors(t *testing.T) {
	ctx := context.Background()
	database := testutil.NewTestDB(t)
	assigns := repository.NewSQLiteAssignmentRepo(database)
	svc := service.NewAvailabilityService(assigns, zerolog.Nop())

	require.NoError(t, database.Close())

	_, err := svc.Check(ctx, "any", timeline.Window{
		Start: testutil.TestEventStart,
		End:   testutil.TestEventEnd,
	}, "")
	require.ErrorIs(t, err, service.ErrAvailabilityCheck)
}
