package snowflake

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTimeToIDKeepsTheMillisecondsInTheHighBits(t *testing.T) {
	require := require.New(t)

	ts := time.Date(2023, 4, 1, 12, 30, 15, 123_000_000, time.UTC)
	id := TimeToID(ts)
	require.Equal(uint64(ts.UnixMilli()), uint64(id>>16))
}

func TestIDsAreOrderedByTime(t *testing.T) {
	ts := time.Date(2023, 4, 1, 12, 30, 15, 0, time.UTC)
	earlier := TimeToID(ts)
	later := TimeToID(ts.Add(time.Millisecond))
	require.Less(t, uint64(earlier), uint64(later))
}

func TestIDString(t *testing.T) {
	id := ID(110330528023225442)
	require.Equal(t, "110330528023225442", id.String())
}
