package janitor_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/oxholm/drift/internal/event"
	"github.com/oxholm/drift/internal/janitor"
	mocks "github.com/oxholm/drift/internal/janitor/mocks"
	"github.com/oxholm/drift/internal/rclone"
	"github.com/oxholm/drift/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.SetMinLoggingLevel(logger.VERBOSE)
}

// startService starts a janitor instance which is stopped when the test
// completes. The returned channel receives an event per finished
// cleanup pass.
func startService(t *testing.T, config janitor.Config, remoteMock *mocks.MockRemote) (*janitor.Service, event.HandlerChannel) {
	eventBus := event.New()
	cleanupDone := make(event.HandlerChannel, 10)
	eventBus.RegisterHandlerChannel(cleanupDone, event.CLEANUP_COMPLETE)

	srv := janitor.New(config, remoteMock, eventBus)

	wg := sync.WaitGroup{}
	wg.Add(1)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		defer wg.Done()
		assert.NoError(t, srv.Run(ctx))
	}()

	t.Cleanup(func() {
		cancel()
		wg.Wait()
	})

	return srv, cleanupDone
}

func waitForCleanup(t *testing.T, cleanupDone event.HandlerChannel) {
	select {
	case <-cleanupDone:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for cleanup pass to complete")
	}
}

func Test_Cleanup_EvictsOldestUntilUnderQuota(t *testing.T) {
	t.Parallel()
	now := time.Now()
	remoteMock := mocks.NewMockRemote(t)
	remoteMock.EXPECT().ListJSON(mock.Anything, "remote:media").Return([]rclone.Entry{
		{Path: "newer.mkv", Size: 500, ModTime: now.Add(-time.Hour)},
		{Path: "oldest.mkv", Size: 600, ModTime: now.Add(-2 * time.Hour)},
	}, nil)

	// 1100 bytes used against a 1000 byte quota; evicting the oldest
	// file brings usage to 500 and the newer file must survive.
	var calls []string
	var callsMu sync.Mutex
	recordCall := func(name string) {
		callsMu.Lock()
		defer callsMu.Unlock()
		calls = append(calls, name)
	}

	remoteMock.EXPECT().Rcat(mock.Anything, "", "remote:media/oldest.mkv").
		Run(func(_ context.Context, _ string, _ string) { recordCall("rcat") }).Return(nil)
	remoteMock.EXPECT().Touch(mock.Anything, "remote:media/oldest.mkv").
		Run(func(_ context.Context, _ string) { recordCall("touch") }).Return(nil)
	remoteMock.EXPECT().Delete(mock.Anything, "remote:media/oldest.mkv").
		Run(func(_ context.Context, _ string) { recordCall("delete") }).Return(nil)

	srv, cleanupDone := startService(t, janitor.Config{DestPath: "remote:media", SizeLimit: 1000}, remoteMock)

	srv.Kick()
	waitForCleanup(t, cleanupDone)

	callsMu.Lock()
	defer callsMu.Unlock()
	assert.Equal(t, []string{"rcat", "touch", "delete"}, calls, "eviction must zero the file and bump its modtime before deleting")
}

func Test_Cleanup_EvictsRepeatedlyWhileOverQuota(t *testing.T) {
	t.Parallel()
	now := time.Now()
	remoteMock := mocks.NewMockRemote(t)
	remoteMock.EXPECT().ListJSON(mock.Anything, "remote:media").Return([]rclone.Entry{
		{Path: "a.mkv", Size: 600, ModTime: now.Add(-3 * time.Hour)},
		{Path: "b.mkv", Size: 500, ModTime: now.Add(-2 * time.Hour)},
		{Path: "c.mkv", Size: 400, ModTime: now.Add(-time.Hour)},
	}, nil)

	// Quota of 600: a and b must both go, which leaves 400 in use.
	var evicted []string
	var evictedMu sync.Mutex
	remoteMock.EXPECT().Rcat(mock.Anything, "", mock.Anything).Return(nil)
	remoteMock.EXPECT().Touch(mock.Anything, mock.Anything).Return(nil)
	remoteMock.EXPECT().Delete(mock.Anything, mock.Anything).
		Run(func(_ context.Context, target string) {
			evictedMu.Lock()
			defer evictedMu.Unlock()
			evicted = append(evicted, target)
		}).
		Return(nil)

	srv, cleanupDone := startService(t, janitor.Config{DestPath: "remote:media", SizeLimit: 600}, remoteMock)

	srv.Kick()
	waitForCleanup(t, cleanupDone)

	evictedMu.Lock()
	defer evictedMu.Unlock()
	assert.Equal(t, []string{"remote:media/a.mkv", "remote:media/b.mkv"}, evicted)
}

func Test_Cleanup_NoopWhenUnderQuota(t *testing.T) {
	t.Parallel()
	remoteMock := mocks.NewMockRemote(t)
	remoteMock.EXPECT().ListJSON(mock.Anything, "remote:media").Return([]rclone.Entry{
		{Path: "a.mkv", Size: 100, ModTime: time.Now()},
	}, nil)

	srv, cleanupDone := startService(t, janitor.Config{DestPath: "remote:media", SizeLimit: 1000}, remoteMock)

	srv.Kick()
	waitForCleanup(t, cleanupDone)
}

func Test_Kick_NoopWithoutSizeLimit(t *testing.T) {
	t.Parallel()
	// No expectations; any remote call fails the test.
	remoteMock := mocks.NewMockRemote(t)
	srv, cleanupDone := startService(t, janitor.Config{DestPath: "remote:media", SizeLimit: 0}, remoteMock)

	srv.Kick()

	select {
	case <-cleanupDone:
		require.Fail(t, "no cleanup pass should run when no size limit is configured")
	case <-time.After(50 * time.Millisecond):
	}
}
