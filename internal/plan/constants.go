package plan

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/specialistvlad/buildplan/internal/ctxlog"
	"k8s.io/utils/clock"
)

// Names of the build-time constants.
const (
	CommitHashKey = "__COMMIT_HASH__"
	BuildDateKey  = "__BUILD_DATE__"
)

// Constants holds the build-time literals of one invocation.
type Constants struct {
	// Revision identifies the source revision. Never empty.
	Revision string
	// BuildDate is the resolution time in milliseconds since the Unix epoch.
	BuildDate int64
}

// Define renders the constants as source literals keyed by constant name.
func (c Constants) Define() map[string]string {
	rev, _ := json.Marshal(c.Revision)
	return map[string]string{
		CommitHashKey: string(rev),
		BuildDateKey:  strconv.FormatInt(c.BuildDate, 10),
	}
}

// ResolveConstants computes the constants for one invocation. A nil clock
// uses the wall clock; a nil source yields FallbackRevision.
func ResolveConstants(ctx context.Context, clk clock.PassiveClock, src RevisionSource) Constants {
	if clk == nil {
		clk = clock.RealClock{}
	}
	c := Constants{
		Revision:  resolveRevision(ctx, src),
		BuildDate: clk.Now().UnixMilli(),
	}
	ctxlog.FromContext(ctx).Debug("Build constants resolved.", "revision", c.Revision, "build_date", time.UnixMilli(c.BuildDate).UTC())
	return c
}
