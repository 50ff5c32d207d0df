// Package snowflake generates 64-bit record identifiers in the Twitter
// Snowflake layout: a millisecond timestamp in the high bits, a machine ID,
// and a per-millisecond sequence in the low bits. IDs are unique per machine
// without coordination and roughly ordered by creation time, and their low
// bits carry the time+counter entropy the short-code generator feeds on.
package snowflake

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

const (
	// epoch is 2024-01-01 00:00:00 UTC in milliseconds. Moving it forward
	// extends the usable lifetime of the 41-bit timestamp.
	epoch int64 = 1704067200000

	machineBits  = 10
	sequenceBits = 12

	maxMachineID = (1 << machineBits) - 1  // 1023
	maxSequence  = (1 << sequenceBits) - 1 // 4095

	machineShift   = sequenceBits
	timestampShift = sequenceBits + machineBits
)

var (
	ErrInvalidMachineID    = errors.New("machine ID must be between 0 and 1023")
	ErrClockMovedBackwards = errors.New("clock moved backwards, refusing to generate ID")
)

// Generator produces snowflake IDs. Safe for concurrent use.
type Generator struct {
	mu            sync.Mutex
	machineID     int64
	sequence      int64
	lastTimestamp int64
}

// NewGenerator creates a generator for the given machine ID (0-1023).
func NewGenerator(machineID int64) (*Generator, error) {
	if machineID < 0 || machineID > maxMachineID {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidMachineID, machineID)
	}
	return &Generator{machineID: machineID}, nil
}

// Next returns the next identifier. When the sequence for the current
// millisecond is exhausted it spins until the next one.
func (g *Generator) Next() (int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now().UnixMilli()
	if now < g.lastTimestamp {
		return 0, ErrClockMovedBackwards
	}

	if now == g.lastTimestamp {
		g.sequence = (g.sequence + 1) & maxSequence
		if g.sequence == 0 {
			for now <= g.lastTimestamp {
				now = time.Now().UnixMilli()
			}
		}
	} else {
		g.sequence = 0
	}

	g.lastTimestamp = now

	id := (now-epoch)<<timestampShift | g.machineID<<machineShift | g.sequence
	return id, nil
}
