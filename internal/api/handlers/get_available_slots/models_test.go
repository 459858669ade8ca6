package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SalonService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

func TestToUseCaseRequest(t *testing.T) {
	req, err := ToUseCaseRequest("t1", "2025-03-12", " s1, ,s2,")
	require.NoError(t, err)

	assert.Equal(t, "t1", req.TenantID)
	assert.Equal(t, time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC), req.Date)
	assert.Equal(t, []string{"s1", "s2"}, req.ServiceIDs)

	req, err = ToUseCaseRequest("t1", "2025-03-12", "")
	require.NoError(t, err)
	assert.Empty(t, req.ServiceIDs)

	_, err = ToUseCaseRequest("t1", "12.03.2025", "")
	assert.Error(t, err)
}

func TestFromUseCaseResponse(t *testing.T) {
	start, err := types.NewTimeStringFromString("10:00")
	require.NoError(t, err)

	resp := FromUseCaseResponse(&getAvailableSlots.Response{
		Date:            time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		TenantID:        "t1",
		IsOpen:          true,
		DurationMinutes: 60,
		Slots: []domain.AvailableSlot{
			{StartTime: start, DurationMinutes: 60, AvailableSpots: 0, TotalSpots: 2},
		},
	})

	assert.Equal(t, "2025-03-12", resp.Date)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, "10:00", resp.Slots[0].StartTime)
	assert.True(t, resp.Slots[0].IsFull)
}
