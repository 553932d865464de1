package simplefin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateToUnix(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{
			name:  "epoch",
			input: "1970-01-01",
			want:  0,
		},
		{
			name:  "leap year date",
			input: "2024-02-01",
			want:  1706745600,
		},
		{
			name:  "mid year date",
			input: "2024-06-15",
			want:  1718409600,
		},
		{
			name:    "month out of range",
			input:   "2024-13-40",
			wantErr: true,
		},
		{
			name:    "day out of range",
			input:   "2024-02-30",
			wantErr: true,
		},
		{
			name:    "not a date",
			input:   "not-a-date",
			wantErr: true,
		},
		{
			name:    "wrong field order",
			input:   "15-06-2024",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DateToUnix(tt.input)

			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDateToUnix_RoundTrips(t *testing.T) {
	for _, date := range []string{"1970-01-01", "1999-12-31", "2024-02-29", "2030-07-04"} {
		ts, err := DateToUnix(date)
		require.NoError(t, err)
		assert.Equal(t, date, UnixToDate(ts))
	}
}
