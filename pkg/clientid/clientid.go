package clientid

import (
	"strconv"
	"sync"
	"time"
)

// Optimistic comment IDs are fabricated client-side the instant the user
// submits, before the backend has confirmed anything. They are millisecond
// timestamps, suffixed with a counter when two IDs land on the same
// millisecond so they never collide within one process.

var genLock = sync.Mutex{}
var lastTs int64 = 0
var increment int64 = 0

func GenOptimisticId() string {
	genLock.Lock()
	defer genLock.Unlock()

	ts := time.Now().UnixMilli()
	if ts != lastTs {
		lastTs = ts
		increment = 0
		return strconv.FormatInt(ts, 10)
	}

	increment += 1
	return strconv.FormatInt(ts, 10) + "-" + strconv.FormatInt(increment, 10)
}

// Timestamp extracts the millisecond timestamp an optimistic ID was
// generated at. Returns 0 for IDs not produced by GenOptimisticId.
func Timestamp(id string) int64 {
	for i := 0; i < len(id); i++ {
		if id[i] == '-' {
			id = id[:i]
			break
		}
	}
	ts, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0
	}
	return ts
}
