package schema

import (
	"fmt"
	"sync"
	"time"
)

var (
	idMu   sync.Mutex
	idLast int64
)

// NewSectionID generates a builder-style section id: "{type}-{timestamp}".
// The millisecond stamp is bumped monotonically so two sections created in
// the same instant never collide within a process.
func NewSectionID(typ string) string {
	idMu.Lock()
	defer idMu.Unlock()

	now := time.Now().UnixMilli()
	if now <= idLast {
		now = idLast + 1
	}
	idLast = now
	return fmt.Sprintf("%s-%d", typ, now)
}
