package booking

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListQuery(t *testing.T) {
	tests := []struct {
		name      string
		filter    Filter
		wantWhere string
		wantArgs  []any
	}{
		{
			name:      "All for booker",
			filter:    Filter{BookerID: bookerID, State: StateAll, Now: fixedNow, Page: 0, Size: 10},
			wantWhere: "WHERE b.booker_id = $1 ORDER BY b.start_time DESC LIMIT 10 OFFSET 0",
			wantArgs:  []any{bookerID},
		},
		{
			name:      "Current is strict on both ends",
			filter:    Filter{BookerID: bookerID, State: StateCurrent, Now: fixedNow, Page: 2, Size: 10},
			wantWhere: "WHERE b.booker_id = $1 AND b.start_time < $2 AND b.end_time > $3 ORDER BY b.start_time DESC LIMIT 10 OFFSET 20",
			wantArgs:  []any{bookerID, fixedNow, fixedNow},
		},
		{
			name:      "Past",
			filter:    Filter{OwnerID: ownerID, State: StatePast, Now: fixedNow, Page: 1, Size: 5},
			wantWhere: "WHERE i.owner_id = $1 AND b.end_time < $2 ORDER BY b.start_time DESC LIMIT 5 OFFSET 5",
			wantArgs:  []any{ownerID, fixedNow},
		},
		{
			name:      "Future",
			filter:    Filter{OwnerID: ownerID, State: StateFuture, Now: fixedNow, Page: 0, Size: 3},
			wantWhere: "WHERE i.owner_id = $1 AND b.start_time > $2 ORDER BY b.start_time DESC LIMIT 3 OFFSET 0",
			wantArgs:  []any{ownerID, fixedNow},
		},
		{
			name:      "Waiting",
			filter:    Filter{OwnerID: ownerID, State: StateWaiting, Now: fixedNow, Page: 0, Size: 10},
			wantWhere: "WHERE i.owner_id = $1 AND b.status = $2 ORDER BY b.start_time DESC LIMIT 10 OFFSET 0",
			wantArgs:  []any{ownerID, StatusWaiting},
		},
		{
			name:      "Rejected",
			filter:    Filter{BookerID: bookerID, State: StateRejected, Now: fixedNow, Page: 3, Size: 4},
			wantWhere: "WHERE b.booker_id = $1 AND b.status = $2 ORDER BY b.start_time DESC LIMIT 4 OFFSET 12",
			wantArgs:  []any{bookerID, StatusRejected},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := listQuery(tt.filter).ToSql()
			require.NoError(t, err)

			assert.True(t, strings.HasPrefix(sql, "SELECT b.id, b.item_id, i.name, i.owner_id, b.booker_id, u.name"), sql)
			assert.Contains(t, sql, "FROM public.bookings b JOIN public.items i ON b.item_id = i.id JOIN public.users u ON b.booker_id = u.id")
			assert.True(t, strings.HasSuffix(sql, tt.wantWhere), sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
