package workflow

import (
	"testing"

	"vkbase"
)

func TestClassifyAcquire(t *testing.T) {
	cases := []struct {
		status vkbase.SyncStatus
		want   acquireOutcome
	}{
		{vkbase.SyncOK, acquireRender},
		{vkbase.SyncSuboptimal, acquireRecreate},
		{vkbase.SyncOutOfDate, acquireRecreate},
		{vkbase.SyncTimeout, acquireSkip},
	}
	for _, c := range cases {
		if got := classifyAcquire(c.status); got != c.want {
			t.Errorf("classifyAcquire(%d) = %d, want %d", c.status, got, c.want)
		}
	}
}
