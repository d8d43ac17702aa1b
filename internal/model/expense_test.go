package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpenseUnmarshalJSON(t *testing.T) {
	midnight := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		payload string
		want    time.Time
		wantErr bool
	}{
		{
			name:    "full timestamp",
			payload: `{"id":"e1","amount":5,"description":"x","categoryId":"food","date":"2025-03-14T09:30:00Z"}`,
			want:    midnight,
		},
		{
			name:    "bare date",
			payload: `{"id":"e1","amount":5,"description":"x","categoryId":"food","date":"2025-03-14"}`,
			want:    midnight,
		},
		{
			name:    "unparseable date",
			payload: `{"id":"e1","amount":5,"description":"x","categoryId":"food","date":"last tuesday"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var exp Expense
			err := json.Unmarshal([]byte(tt.payload), &exp)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(exp.Date), "got %v", exp.Date)
			assert.Equal(t, "e1", exp.ID)
		})
	}
}

func TestDateOnly(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)
	in := time.Date(2025, 3, 14, 2, 45, 0, 0, loc)

	got := DateOnly(in)
	// 02:45 at UTC+5 is still March 13 in UTC.
	assert.Equal(t, time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC), got)
}
