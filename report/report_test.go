package report

import (
	"math"
	"time"

	"github.com/encodeous/dsdv/core"
	"github.com/rs/xid"
)

func sampleResults() []core.Result {
	return []core.Result{
		{
			RunId:       xid.New(),
			Nodes:       4,
			PdrBefore:   1,
			DelayBefore: 2.5,
			Pdr:         0.5,
			Delay:       2.25,
			Overhead:    40,
			Convergence: 150 * time.Microsecond,
			Rounds:      3,
			LinkFailed:  true,
		},
		{
			RunId:       xid.New(),
			Nodes:       5,
			PdrBefore:   0,
			DelayBefore: math.Inf(1),
			Pdr:         0,
			Delay:       math.Inf(1),
			Overhead:    0,
			Convergence: time.Millisecond,
			Rounds:      1,
			LinkFailed:  false,
		},
	}
}
