package bat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScrollActions(t *testing.T) {
	assert.Len(t, scrollActions(3, time.Second), 6)
	assert.Empty(t, scrollActions(0, time.Second))
}

func TestPageBudget(t *testing.T) {
	f := &BrowserFetcher{opts: BrowserOptions{
		Timeout:     10 * time.Second,
		SettleTime:  5 * time.Second,
		ScrollCount: 3,
		ScrollPause: 2 * time.Second,
	}}
	assert.Equal(t, 21*time.Second, f.pageBudget())

	f.opts.ScrollCount = 0
	assert.Equal(t, 15*time.Second, f.pageBudget())
}
