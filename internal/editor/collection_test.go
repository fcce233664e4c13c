package editor

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// persistedRecords 构造 n 条已持久化记录，位置连续
func persistedRecords(n int) []Record {
	records := make([]Record, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, Record{
			ID:       fmt.Sprintf("id-%d", i),
			Platform: PlatformGitHub,
			URL:      fmt.Sprintf("https://example.com/%d", i),
			Position: i,
		})
	}
	return records
}

// applyOp 执行一个编号操作，下标对可见投影长度取模保证合法
func applyOp(c *Collection, op int, a int, b int) {
	n := len(c.Visible())
	switch op % 4 {
	case 0:
		c.Add()
	case 1:
		if n > 0 {
			c.Remove(a % n)
		}
	case 2:
		if n > 0 {
			c.Edit(a%n, PlatformTwitter, "https://twitter.com/x")
		}
	case 3:
		if n > 1 {
			c.Move(a%n, b%n)
		}
	}
}

// 任意操作序列后可见投影永不包含已删除记录
func TestProperty_VisibleNeverContainsDeleted(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("visible excludes deleted for all op sequences", prop.ForAll(
		func(seed int, ops []int) bool {
			c := NewCollection()
			c.Load(persistedRecords(seed % 6))
			for i, op := range ops {
				applyOp(c, op, op+i, op*3+i)
			}
			for _, r := range c.Visible() {
				if r.Deleted {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 1000),
		gen.SliceOf(gen.IntRange(0, 64)),
	))

	// 任意操作序列后可见记录的位置均为稠密的 0..n-1
	properties.Property("positions stay dense after any move", prop.ForAll(
		func(n int, from int, to int) bool {
			if n < 2 {
				return true
			}
			c := NewCollection()
			c.Load(persistedRecords(n))
			c.Move(from%n, to%n)
			for i, r := range c.Visible() {
				if r.Position != i {
					return false
				}
			}
			return true
		},
		gen.IntRange(2, 12),
		gen.IntRange(0, 64),
		gen.IntRange(0, 64),
	))

	properties.TestingRun(t)
}

func TestRemoveNewRecordSplicesOut(t *testing.T) {
	c := NewCollection()
	c.Load(persistedRecords(2))

	c.Add()
	assert.Equal(t, 3, c.Len())

	// 新记录排在可见投影末尾
	c.Remove(2)
	assert.Equal(t, 2, c.Len(), "new record must disappear entirely")
	assert.False(t, c.HasPendingChanges())
}

func TestRemovePersistedRecordFlagsDeleted(t *testing.T) {
	c := NewCollection()
	c.Load(persistedRecords(3))

	c.Remove(1)
	assert.Equal(t, 3, c.Len(), "persisted record is retained until save")
	assert.Len(t, c.Visible(), 2)
	assert.True(t, c.HasPendingChanges())

	for _, r := range c.Visible() {
		assert.NotEqual(t, "id-1", r.ID)
	}
}

func TestRemoveSoleNewRecordYieldsEmptyCollection(t *testing.T) {
	c := NewCollection()
	c.Add()
	require.Len(t, c.Visible(), 1)

	c.Remove(0)
	assert.Equal(t, 0, c.Len())
	assert.False(t, c.HasPendingChanges())
}

func TestAddDefaultsAndAppendsLast(t *testing.T) {
	c := NewCollection()
	c.Load(persistedRecords(2))

	rec := c.Add()
	assert.Equal(t, DefaultPlatform, rec.Platform)
	assert.Equal(t, "", rec.URL)
	assert.Equal(t, 2, rec.Position)
	assert.True(t, rec.New)

	visible := c.Visible()
	assert.Same(t, rec, visible[len(visible)-1])
	assert.True(t, c.HasPendingChanges())
}

func TestEditPersistedSetsModified(t *testing.T) {
	c := NewCollection()
	c.Load(persistedRecords(2))

	c.Edit(0, PlatformTwitch, "https://twitch.tv/u")
	rec := c.Visible()[0]
	assert.True(t, rec.Modified)
	assert.False(t, rec.New)
	assert.Equal(t, PlatformTwitch, rec.Platform)
	assert.Equal(t, PlatformTwitch.Label(), rec.Title)
}

func TestEditNewRecordDoesNotSetModified(t *testing.T) {
	c := NewCollection()
	c.Add()

	c.Edit(0, PlatformCodepen, "https://codepen.io/u")
	rec := c.Visible()[0]
	assert.True(t, rec.New)
	assert.False(t, rec.Modified, "edits on a new record are absorbed into its creation")
}

func TestMoveSwapsTwoPersistedRecords(t *testing.T) {
	c := NewCollection()
	c.Load([]Record{
		{ID: "a", Platform: PlatformGitHub, URL: "u1", Position: 0},
		{ID: "b", Platform: PlatformTwitter, URL: "u2", Position: 1},
	})

	c.Move(0, 1)

	visible := c.Visible()
	require.Len(t, visible, 2)
	assert.Equal(t, "b", visible[0].ID)
	assert.Equal(t, 0, visible[0].Position)
	assert.True(t, visible[0].Reordered)
	assert.Equal(t, "a", visible[1].ID)
	assert.Equal(t, 1, visible[1].Position)
	assert.True(t, visible[1].Reordered)
}

func TestHasPendingChangesAfterLoadIsFalse(t *testing.T) {
	c := NewCollection()
	c.Load(persistedRecords(4))
	assert.False(t, c.HasPendingChanges())

	c.Move(0, 3)
	assert.True(t, c.HasPendingChanges())

	// 整体替换清空所有标记
	c.Load(persistedRecords(4))
	assert.False(t, c.HasPendingChanges())
}

func TestMoveSkipsDeletedRecordsInProjection(t *testing.T) {
	c := NewCollection()
	c.Load(persistedRecords(4))

	c.Remove(1)
	// 可见投影 [id-0, id-2, id-3]，移动其中的 id-2 到头部
	c.Move(1, 0)

	visible := c.Visible()
	require.Len(t, visible, 3)
	assert.Equal(t, "id-2", visible[0].ID)
	assert.Equal(t, "id-0", visible[1].ID)
	assert.Equal(t, "id-3", visible[2].ID)
	for i, r := range visible {
		assert.Equal(t, i, r.Position)
	}
}

func TestParsePlatform(t *testing.T) {
	assert.Equal(t, PlatformGitHub, ParsePlatform("GitHub"))
	assert.Equal(t, PlatformGitHub, ParsePlatform("github"))
	assert.Equal(t, PlatformStackOverflow, ParsePlatform("Stack Overflow"))
	assert.Equal(t, PlatformFrontendMentor, ParsePlatform("frontend mentor"))
	assert.Equal(t, PlatformUnknown, ParsePlatform("myspace"))
	assert.True(t, PlatformUnknown.Valid())
	assert.False(t, Platform("bogus").Valid())
}
