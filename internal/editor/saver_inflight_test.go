package editor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockingGateway 在 Update 上阻塞，用于观察保存进行中的行为
type blockingGateway struct {
	*fakeGateway
	started chan struct{}
	release chan struct{}
}

func (g *blockingGateway) Update(ctx context.Context, rec Record) (Record, error) {
	close(g.started)
	<-g.release
	return g.fakeGateway.Update(ctx, rec)
}

func TestSaveRejectsOverlappingInvocation(t *testing.T) {
	gw := &blockingGateway{
		fakeGateway: newFakeGateway(Record{ID: "a", Platform: PlatformGitHub, URL: "u1", Position: 0}),
		started:     make(chan struct{}),
		release:     make(chan struct{}),
	}
	c := NewCollection()
	loadFromGateway(t, c, gw.fakeGateway)
	saver := NewSaver(c, gw)

	c.Edit(0, PlatformFacebook, "https://facebook.com/u")

	done := make(chan error, 1)
	go func() {
		done <- saver.Save(context.Background())
	}()

	<-gw.started
	err := saver.Save(context.Background())
	assert.ErrorIs(t, err, ErrSaveInFlight)

	close(gw.release)
	require.NoError(t, <-done)
	assert.False(t, c.HasPendingChanges())
}
