package editor

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGateway 内存版远端网关，可注入单个操作的失败
type fakeGateway struct {
	mu      sync.Mutex
	records map[string]Record
	nextID  int

	createCalls  int
	updateCalls  int
	deleteCalls  int
	reorderCalls int
	fetchCalls   int

	failCreate  bool
	failUpdate  bool
	failDelete  bool
	failReorder bool
}

func newFakeGateway(records ...Record) *fakeGateway {
	gw := &fakeGateway{records: make(map[string]Record)}
	for _, r := range records {
		gw.records[r.ID] = r
	}
	return gw
}

func (g *fakeGateway) FetchAll(ctx context.Context) ([]Record, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.fetchCalls++

	out := make([]Record, 0, len(g.records))
	for _, r := range g.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (g *fakeGateway) Create(ctx context.Context, rec Record) (Record, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.createCalls++
	if g.failCreate {
		return Record{}, errors.New("create rejected")
	}
	g.nextID++
	rec.ID = fmt.Sprintf("srv-%d", g.nextID)
	rec.New = false
	g.records[rec.ID] = rec
	return rec, nil
}

func (g *fakeGateway) Update(ctx context.Context, rec Record) (Record, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.updateCalls++
	if g.failUpdate {
		return Record{}, errors.New("update rejected")
	}
	stored, ok := g.records[rec.ID]
	if !ok {
		return Record{}, errors.New("not found")
	}
	stored.Platform = rec.Platform
	stored.Title = rec.Title
	stored.URL = rec.URL
	g.records[rec.ID] = stored
	return stored, nil
}

func (g *fakeGateway) Delete(ctx context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.deleteCalls++
	if g.failDelete {
		return errors.New("delete rejected")
	}
	delete(g.records, id)
	return nil
}

func (g *fakeGateway) ReorderBatch(ctx context.Context, updates []PositionUpdate) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.reorderCalls++
	if g.failReorder {
		return errors.New("reorder rejected")
	}
	for _, u := range updates {
		if r, ok := g.records[u.ID]; ok {
			r.Position = u.Position
			g.records[u.ID] = r
		}
	}
	return nil
}

func (g *fakeGateway) remoteCalls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.createCalls + g.updateCalls + g.deleteCalls + g.reorderCalls
}

func loadFromGateway(t *testing.T, c *Collection, gw *fakeGateway) {
	t.Helper()
	fresh, err := gw.FetchAll(context.Background())
	require.NoError(t, err)
	c.Load(fresh)
}

func TestSaveMixedBatchRefreshesCollection(t *testing.T) {
	gw := newFakeGateway(
		Record{ID: "a", Platform: PlatformGitHub, URL: "u1", Position: 0},
		Record{ID: "b", Platform: PlatformTwitter, URL: "u2", Position: 1},
	)
	c := NewCollection()
	loadFromGateway(t, c, gw)
	saver := NewSaver(c, gw)

	c.Add()
	c.Edit(2, PlatformYouTube, "https://youtube.com/@u")
	c.Edit(0, PlatformGitLab, "https://gitlab.com/u")
	c.Remove(1)

	require.NoError(t, saver.Save(context.Background()))

	assert.Equal(t, 1, gw.createCalls)
	assert.Equal(t, 1, gw.updateCalls)
	assert.Equal(t, 1, gw.deleteCalls)

	// 保存成功后集合被远端全量数据替换，标记全部清空
	assert.False(t, c.HasPendingChanges())
	assert.Len(t, c.Visible(), 2)
	for _, r := range c.Visible() {
		assert.NotEmpty(t, r.ID)
		assert.False(t, r.New || r.Modified || r.Deleted || r.Reordered)
	}
}

func TestSaveEditIssuesExactlyOneUpdate(t *testing.T) {
	gw := newFakeGateway(Record{ID: "a", Platform: PlatformGitHub, URL: "u1", Position: 0})
	c := NewCollection()
	loadFromGateway(t, c, gw)
	saver := NewSaver(c, gw)

	c.Edit(0, PlatformHashnode, "https://hashnode.com/@u")

	require.NoError(t, saver.Save(context.Background()))
	assert.Equal(t, 1, gw.updateCalls)
	assert.Equal(t, 0, gw.createCalls)
}

func TestSaveIdempotentSecondCallIssuesNoRemoteCalls(t *testing.T) {
	gw := newFakeGateway(Record{ID: "a", Platform: PlatformGitHub, URL: "u1", Position: 0})
	c := NewCollection()
	loadFromGateway(t, c, gw)
	saver := NewSaver(c, gw)

	c.Add()
	require.NoError(t, saver.Save(context.Background()))
	callsAfterFirst := gw.remoteCalls()

	require.NoError(t, saver.Save(context.Background()))
	assert.Equal(t, callsAfterFirst, gw.remoteCalls(), "second save must issue zero remote calls")
}

func TestSaveDeleteFailureLeavesPendingStateUntouched(t *testing.T) {
	gw := newFakeGateway(
		Record{ID: "a", Platform: PlatformGitHub, URL: "u1", Position: 0},
		Record{ID: "b", Platform: PlatformTwitter, URL: "u2", Position: 1},
	)
	c := NewCollection()
	loadFromGateway(t, c, gw)
	saver := NewSaver(c, gw)

	c.Add()
	c.Edit(2, PlatformDevTo, "https://dev.to/u")
	c.Edit(0, PlatformCodewars, "https://codewars.com/u")
	c.Remove(1)

	gw.failDelete = true
	err := saver.Save(context.Background())
	require.Error(t, err)

	// 创建和更新即使成功，本地待保存状态也必须原样保留以便重试
	assert.Equal(t, 3, c.Len())
	var newCount, modifiedCount, deletedCount int
	for _, r := range c.Records() {
		if r.New {
			newCount++
		}
		if r.Modified {
			modifiedCount++
		}
		if r.Deleted {
			deletedCount++
		}
	}
	assert.Equal(t, 1, newCount)
	assert.Equal(t, 1, modifiedCount)
	assert.Equal(t, 1, deletedCount)
	assert.True(t, c.HasPendingChanges())

	// 标记未清空，重试会重新派发创建调用
	gw.failDelete = false
	require.NoError(t, saver.Save(context.Background()))
	assert.Equal(t, 2, gw.createCalls)
	assert.False(t, c.HasPendingChanges())
}

func TestSaveReorderSendsBatchForPersistedRecords(t *testing.T) {
	gw := newFakeGateway(
		Record{ID: "a", Platform: PlatformGitHub, URL: "u1", Position: 0},
		Record{ID: "b", Platform: PlatformTwitter, URL: "u2", Position: 1},
		Record{ID: "c", Platform: PlatformTwitch, URL: "u3", Position: 2},
	)
	c := NewCollection()
	loadFromGateway(t, c, gw)
	saver := NewSaver(c, gw)

	c.Move(2, 0)

	require.NoError(t, saver.Save(context.Background()))
	assert.Equal(t, 1, gw.reorderCalls)

	visible := c.Visible()
	require.Len(t, visible, 3)
	assert.Equal(t, "c", visible[0].ID)
	assert.Equal(t, "a", visible[1].ID)
	assert.Equal(t, "b", visible[2].ID)
	for i, r := range visible {
		assert.Equal(t, i, r.Position)
	}
}

func TestSaveWithoutPendingChangesIsNoop(t *testing.T) {
	gw := newFakeGateway(Record{ID: "a", Platform: PlatformGitHub, URL: "u1", Position: 0})
	c := NewCollection()
	loadFromGateway(t, c, gw)
	saver := NewSaver(c, gw)

	require.NoError(t, saver.Save(context.Background()))
	assert.Equal(t, 0, gw.remoteCalls())
	assert.Equal(t, 1, gw.fetchCalls, "no refresh without a dispatched batch")
}
