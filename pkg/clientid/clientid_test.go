package clientid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenOptimisticIdUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := GenOptimisticId()
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestTimestamp(t *testing.T) {
	before := time.Now().UnixMilli()
	id := GenOptimisticId()
	after := time.Now().UnixMilli()

	ts := Timestamp(id)
	assert.GreaterOrEqual(t, ts, before)
	assert.LessOrEqual(t, ts, after)

	assert.EqualValues(t, 0, Timestamp("not-a-timestamp"))
}
