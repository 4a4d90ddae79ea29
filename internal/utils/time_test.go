package util_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	util "github.com/saulo-duarte/quizforge/internal/utils"
)

func TestDaysBetween(t *testing.T) {
	jan1 := util.DateOf(2024, time.January, 1)

	t.Run("SameDay", func(t *testing.T) {
		assert.Equal(t, 0, util.DaysBetween(jan1, jan1))
	})
	t.Run("NextDay", func(t *testing.T) {
		assert.Equal(t, 1, util.DaysBetween(jan1, util.DateOf(2024, time.January, 2)))
	})
	t.Run("AcrossMonth", func(t *testing.T) {
		assert.Equal(t, 1, util.DaysBetween(util.DateOf(2024, time.January, 31), util.DateOf(2024, time.February, 1)))
	})
	t.Run("Backwards", func(t *testing.T) {
		assert.Equal(t, -4, util.DaysBetween(util.DateOf(2024, time.January, 5), jan1))
	})
	t.Run("IgnoresAttachedZone", func(t *testing.T) {
		zoned := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.FixedZone("BRT", -3*60*60))
		assert.Equal(t, 1, util.DaysBetween(jan1, zoned))
	})
}

func TestCivilDay(t *testing.T) {
	defer util.SetLocation(time.UTC)

	util.SetLocation(time.FixedZone("BRT", -3*60*60))
	late := time.Date(2024, time.March, 10, 1, 30, 0, 0, time.UTC)

	day := util.CivilDay(late)
	assert.Equal(t, util.DateOf(2024, time.March, 9), day)
	assert.Equal(t, "2024-03-09", util.FormatDate(&day))
}

func TestMarkdown(t *testing.T) {
	html := util.Markdown("Use `len`:\n\n```go\nlen(xs)\n```")
	assert.Contains(t, html, "<pre><code class=\"language-go\">")
	assert.Empty(t, util.Markdown(""))
}
