package compose

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
)

func TestCompose_Ordering(t *testing.T) {
	c := NewComposer()

	got := c.Compose("AFK", "hydrate!", []string{"Massive Attack — Teardrop", "▬▬♡▬▬ 1:23/5:30"})

	assert.Equal(t, "AFK\nhydrate!\nMassive Attack — Teardrop\n▬▬♡▬▬ 1:23/5:30", got)
}

func TestCompose_BlankSourcesAreSkipped(t *testing.T) {
	c := NewComposer()

	assert.Equal(t, "hydrate!", c.Compose("", "hydrate!", nil))
	assert.Equal(t, "AFK\nsome song", c.Compose("AFK", "", []string{"some song"}))
}

func TestCompose_AllBlankMeansClear(t *testing.T) {
	c := NewComposer()

	assert.Equal(t, "", c.Compose("", "", nil))
	assert.Equal(t, "", c.Compose("", "", []string{""}))
}

func TestCompose_Idempotent(t *testing.T) {
	c := NewComposer()

	first := c.Compose("AFK", "line", []string{"a", "b"})
	second := c.Compose("AFK", "line", []string{"a", "b"})

	assert.Equal(t, first, second)
}

func TestCompose_BudgetTruncation(t *testing.T) {
	c := NewComposer()

	long := strings.Repeat("x", 200)
	got := c.Compose("AFK", long, nil)

	assert.LessOrEqual(t, utf8.RuneCountInString(got), 144)
	assert.True(t, strings.HasSuffix(got, "…"))
	// AFK survives untouched, the cycle line takes the cut
	assert.True(t, strings.HasPrefix(got, "AFK\n"))
	assert.Equal(t, 144, utf8.RuneCountInString(got))
}

func TestCompose_LinesAfterTheCutAreDropped(t *testing.T) {
	c := NewComposer()

	long := strings.Repeat("y", 150)
	got := c.Compose("AFK", long, []string{"should never appear"})

	assert.NotContains(t, got, "should never appear")
	assert.True(t, strings.HasSuffix(got, "…"))
}

func TestCompose_ExactFitIsNotTruncated(t *testing.T) {
	c := NewComposer()

	exact := strings.Repeat("z", 144)
	got := c.Compose("", exact, nil)

	assert.Equal(t, exact, got)
}

func TestCompose_DebugRecordsEverySource(t *testing.T) {
	c := NewComposer()

	long := strings.Repeat("x", 200)
	c.Compose("AFK", long, []string{"header", "progress"})

	// The debug view keeps the uncut cycle line even though the combined
	// output truncated it and dropped now playing entirely
	want := Debug{
		AfkLine:         "AFK",
		CycleLine:       long,
		NowPlayingLine1: "header",
		NowPlayingLine2: "progress",
	}
	if diff := cmp.Diff(want, c.Debug(), cmpopts.IgnoreFields(Debug{}, "Combined")); diff != "" {
		t.Error(diff)
	}
}

func TestMarkSent(t *testing.T) {
	c := NewComposer()

	assert.True(t, c.Debug().LastSentAt.IsZero())

	now := time.Now()
	c.MarkSent(now)

	d := c.Debug()
	assert.Equal(t, now, d.LastSentAt)
	assert.NotEmpty(t, d.LastSendID)

	c.MarkSent(now.Add(time.Second))
	assert.NotEqual(t, d.LastSendID, c.Debug().LastSendID)
}
