package transfer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/oxholm/drift/internal/event"
	"github.com/oxholm/drift/internal/plex"
	"github.com/oxholm/drift/internal/rclone"
	"github.com/oxholm/drift/pkg/logger"
	"github.com/oxholm/drift/pkg/worker"
	"github.com/rjeczalik/notify"
)

var log = logger.Get("TransferServ")

type (
	remote interface {
		ListJSON(ctx context.Context, target string) ([]rclone.Entry, error)
		Move(ctx context.Context, src string, dst string, includes []string) error
	}

	mediaNotifier interface {
		ScanPaths(ctx context.Context, paths []string) ([]plex.ScanResult, error)
	}

	destJanitor interface {
		Kick()
	}

	// Service watches the landing directory and moves files that have
	// stopped changing to the destination remote. Detected files are:
	// - Tracked until two polls a full interval apart observe the same size
	// - Checked against the destination; files already present there are
	//   moved first, as that clears the landing directory fastest
	// - Moved in a single rclone invocation per round, with the janitor
	//   kicked before and after
	// - Reported to the media server so the library reflects the move
	Service struct {
		*sync.Mutex

		remote   remote
		notifier mediaNotifier
		janitor  destJanitor
		eventBus event.EventCoordinator

		config Config
		clock  clockwork.Clock
		items  []*TransferItem

		checkPool     *worker.WorkerPool
		pendingChecks []*TransferItem
		checkWg       sync.WaitGroup

		forceScanCh chan struct{}
		runCtx      context.Context
	}
)

// New creates a new transfer Service using the provided config for
// subsequent calls to 'Run'.
//
// The configs 'SourcePath' is validated to be an existing directory.
// If the directory is missing it will be created; if the path provided
// points to an existing FILE, an error is returned.
func New(config Config, remote remote, notifier mediaNotifier, janitor destJanitor, eventBus event.EventCoordinator, clock clockwork.Clock) (*Service, error) {
	if info, err := os.Stat(config.SourcePath); err == nil {
		if !info.IsDir() {
			return nil, fmt.Errorf("source path '%s' is not a directory", config.SourcePath)
		}
	} else if errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(config.SourcePath, os.ModeDir|os.ModePerm); err != nil {
			return nil, fmt.Errorf("source path '%s' could not be created: %w", config.SourcePath, err)
		}
	} else {
		return nil, fmt.Errorf("source path '%s' could not be accessed: %w", config.SourcePath, err)
	}

	service := &Service{
		Mutex:       &sync.Mutex{},
		remote:      remote,
		notifier:    notifier,
		janitor:     janitor,
		eventBus:    eventBus,
		config:      config,
		clock:       clock,
		items:       make([]*TransferItem, 0),
		checkPool:   worker.NewWorkerPool(),
		forceScanCh: make(chan struct{}, 1),
	}

	for i := 0; i < config.CheckParallelism; i++ {
		label := fmt.Sprintf("dest-check-%d", i)
		service.checkPool.PushWorker(worker.NewWorker(label, service.performDestCheck))
	}

	return service, nil
}

// Run is the main entry point of this service. It responds to OS file
// system change events as well as regularly polling the landing
// directory irrespective of the watcher; the poll interval is also what
// drives the size-settle detection.
// To kill the service, the calling code should cancel the context
// provided.
func (service *Service) Run(ctx context.Context) error {
	service.runCtx = ctx

	fsEvents := make(chan notify.EventInfo, 16)
	if err := notify.Watch(filepath.Join(service.config.SourcePath, "..."), fsEvents, notify.All); err != nil {
		return fmt.Errorf("failed to watch source path '%s': %w", service.config.SourcePath, err)
	}
	defer notify.Stop(fsEvents)

	if err := service.checkPool.Start(); err != nil {
		return err
	}
	defer service.checkPool.Close()

	ticker := service.clock.NewTicker(service.config.PollInterval())
	defer ticker.Stop()

	for {
		select {
		case <-fsEvents:
		case <-ticker.Chan():
		case <-service.forceScanCh:
		case <-ctx.Done():
			return nil
		}

		if err := service.ProcessRound(ctx); err != nil {
			log.Emit(logger.ERROR, "Transfer round failed: %v\n", err)
		}
	}
}

// ForceScan requests that the run loop process a round as soon as
// possible. Safe to call from any goroutine; a scan that is already
// pending absorbs the request.
func (service *Service) ForceScan() {
	select {
	case service.forceScanCh <- struct{}{}:
	default:
	}
}

// GetAllTransfers returns all items currently tracked by this service,
// including completed ones that have not yet been pruned. The items
// returned are snapshots; the scanner keeps mutating its own copies, so
// handing out live pointers would race with every caller.
func (service *Service) GetAllTransfers() []*TransferItem {
	service.Lock()
	defer service.Unlock()

	snapshot := make([]*TransferItem, len(service.items))
	for k, item := range service.items {
		copied := *item
		snapshot[k] = &copied
	}

	return snapshot
}

// GetTransfer accepts the ID of a transfer item and attempts to find it
// in the services state, returning a snapshot of it. If it cannot be
// found, nil is returned.
func (service *Service) GetTransfer(itemID uuid.UUID) *TransferItem {
	service.Lock()
	defer service.Unlock()

	if item := service.findItem(itemID); item != nil {
		copied := *item
		return &copied
	}

	return nil
}

// RemoveTransfer looks for an item with the ID provided in the services
// state, and removes it if it's found. This method *fails* if the item
// is currently TRANSFERRING, as interrupting a running move is not
// possible.
func (service *Service) RemoveTransfer(itemID uuid.UUID) error {
	service.Lock()
	defer service.Unlock()

	for k, v := range service.items {
		if v.ID == itemID {
			if v.State == TRANSFERRING {
				return ErrTransferActive
			}

			service.items = append(service.items[:k], service.items[k+1:]...)
			return nil
		}
	}

	return ErrTransferNotFound
}

// ProcessRound performs one full scan-plan-move cycle: re-scan the
// landing directory, promote settled files, and if any are ready, move
// a batch of them to the destination.
func (service *Service) ProcessRound(ctx context.Context) error {
	ready, tracked, err := service.scan()
	if err != nil {
		return err
	}
	if len(ready) == 0 {
		return nil
	}

	service.checkDestination(ready)

	batch := ready
	existing := make([]*TransferItem, 0, len(ready))
	for _, item := range ready {
		if item.ExistsAtDest {
			existing = append(existing, item)
		}
	}
	if len(existing) > 0 {
		log.Emit(logger.INFO, "%d of %d ready files already exist at destination, moving those first\n", len(existing), len(ready))
		batch = existing
	}

	service.janitor.Kick()

	// When every tracked file is in the batch there is no reason to
	// filter the move; rclone clears the whole landing directory.
	var includes []string
	if len(batch) != tracked {
		includes = make([]string, 0, len(batch))
		for _, item := range batch {
			includes = append(includes, item.RelPath)
		}
	} else {
		log.Emit(logger.INFO, "All files appear to be done, moving all\n")
	}

	service.markBatch(batch, TRANSFERRING)
	if err := service.remote.Move(ctx, service.config.SourcePath, service.config.DestPath, includes); err != nil {
		service.Lock()
		trouble := newTrouble(err)
		for _, item := range batch {
			item.State = TROUBLED
			item.Trouble = trouble

			// The failed move may have left partial files behind, so
			// existence gets re-checked before the retry.
			item.destChecked = false
		}
		service.Unlock()
		for _, item := range batch {
			service.eventBus.Dispatch(event.TRANSFER_UPDATE, item.ID)
		}

		return fmt.Errorf("failed to move batch of %d file(s): %w", len(batch), err)
	}

	service.markBatch(batch, COMPLETE)
	for _, item := range batch {
		service.eventBus.Dispatch(event.TRANSFER_COMPLETE, item.ID)
	}
	log.Emit(logger.SUCCESS, "Moved %d file(s) to %s\n", len(batch), service.config.DestPath)

	service.notifyMediaServer(ctx, batch)
	service.janitor.Kick()

	return nil
}

// scan re-reads the landing directory and reconciles it against the
// tracked items. It returns the items that are READY for transfer and
// the total number of non-complete items being tracked.
//
// Note: this function takes ownership of the mutex, and releases it
// when returning.
func (service *Service) scan() ([]*TransferItem, int, error) {
	service.Lock()
	defer service.Unlock()

	dirEntries, err := os.ReadDir(service.config.SourcePath)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read source path: %w", err)
	}
	if len(dirEntries) == 0 {
		// Landing directory is empty; drop all size tracking so a
		// re-appearing file starts settling from scratch.
		service.items = service.completedItems()
		return nil, 0, nil
	}

	if service.config.MaxPathLength > 0 {
		truncateLongNames(service.config.SourcePath, service.config.MaxPathLength)
	}

	sizes, err := scanFileSizes(service.config.SourcePath)
	if err != nil {
		return nil, 0, err
	}

	now := service.clock.Now()
	settleInterval := service.config.PollInterval()

	kept := make([]*TransferItem, 0, len(service.items))
	trackedPaths := make(map[string]bool, len(service.items))
	for _, item := range service.items {
		if item.State.terminal() {
			kept = append(kept, item)
			continue
		}

		size, stillPresent := sizes[item.Path]
		if !stillPresent {
			// Source file has gone away (moved or deleted
			// externally); forget the item.
			log.Emit(logger.REMOVE, "Source file for %s vanished, dropping\n", item)
			continue
		}

		trackedPaths[item.Path] = true
		kept = append(kept, item)

		if size != item.Size {
			item.Size = size
			item.lastChangedAt = now
			item.destChecked = false
			item.ExistsAtDest = false
			if item.State != SETTLING {
				item.State = SETTLING
				item.Trouble = nil
				service.eventBus.Dispatch(event.TRANSFER_UPDATE, item.ID)
			}
			continue
		}

		if (item.State == SETTLING || item.State == TROUBLED) && now.Sub(item.lastChangedAt) >= settleInterval {
			item.State = READY
			item.Trouble = nil
			service.eventBus.Dispatch(event.TRANSFER_UPDATE, item.ID)
		}
	}

	for path, size := range sizes {
		if trackedPaths[path] {
			continue
		}

		relPath, err := filepath.Rel(service.config.SourcePath, path)
		if err != nil {
			log.Emit(logger.WARNING, "Ignoring un-relativizable path %s: %v\n", path, err)
			continue
		}

		item := &TransferItem{
			ID:            uuid.New(),
			Path:          path,
			RelPath:       relPath,
			Size:          size,
			State:         SETTLING,
			lastChangedAt: now,
		}
		kept = append(kept, item)
		log.Emit(logger.NEW, "Tracking new file %s (%d bytes)\n", relPath, size)
	}

	service.items = kept

	ready := make([]*TransferItem, 0)
	tracked := 0
	for _, item := range service.items {
		if item.State.terminal() {
			continue
		}

		tracked++
		if item.State == READY {
			ready = append(ready, item)
		}
	}

	return ready, tracked, nil
}

// checkDestination queues existence checks for any ready items that
// have not been checked yet and blocks until the worker pool has
// processed them all.
func (service *Service) checkDestination(ready []*TransferItem) {
	service.Lock()
	queued := 0
	for _, item := range ready {
		if !item.destChecked {
			service.pendingChecks = append(service.pendingChecks, item)
			queued++
		}
	}
	service.checkWg.Add(queued)
	service.Unlock()

	if queued == 0 {
		return
	}

	done := make(chan struct{})
	go func() {
		service.checkWg.Wait()
		close(done)
	}()

	// A wakeup is a non-blocking send, so it can miss a worker that is
	// between claiming an empty queue and parking on its wakeup
	// channel. Keep prodding the pool until every queued check is done.
	for {
		service.checkPool.WakeupWorkers()
		select {
		case <-done:
			return
		case <-time.After(10 * time.Millisecond):
		}
	}
}

// performDestCheck is the work function for the destination-check
// worker pool. It claims a single pending item and asks the remote
// whether a file already exists at the items destination path. A
// listing failure is treated as "absent"; the move itself will surface
// any real connectivity problem.
func (service *Service) performDestCheck(w worker.Worker) (bool, error) {
	item := service.claimPendingCheck()
	if item == nil {
		return false, nil
	}
	defer service.checkWg.Done()

	target := service.config.DestPath + "/" + filepath.ToSlash(item.RelPath)
	entries, err := service.remote.ListJSON(service.runCtx, target)
	if err != nil {
		log.Emit(logger.WARNING, "Existence check for %s failed (%v), assuming absent\n", item.RelPath, err)
	}

	service.Lock()
	item.ExistsAtDest = err == nil && len(entries) > 0
	item.destChecked = true
	service.Unlock()

	return true, nil
}

// claimPendingCheck pops the next item awaiting an existence check.
//
// Note: this function takes ownership of the mutex, and releases it
// when returning.
func (service *Service) claimPendingCheck() *TransferItem {
	service.Lock()
	defer service.Unlock()

	if len(service.pendingChecks) == 0 {
		return nil
	}

	item := service.pendingChecks[0]
	service.pendingChecks = service.pendingChecks[1:]
	return item
}

// notifyMediaServer maps the directories touched by the batch through
// the configured media path prefix and asks the media server to scan
// them. Notification failures are logged, never fatal; the files have
// already moved.
func (service *Service) notifyMediaServer(ctx context.Context, batch []*TransferItem) {
	if service.notifier == nil || service.config.MediaPathPrefix == "" {
		log.Emit(logger.DEBUG, "No media path prefix set, skipping notification\n")
		return
	}

	seen := make(map[string]bool)
	paths := make([]string, 0)
	for _, item := range batch {
		dir := filepath.Dir(item.RelPath)
		if seen[dir] {
			continue
		}
		seen[dir] = true

		if dir == "." {
			paths = append(paths, service.config.MediaPathPrefix)
		} else {
			paths = append(paths, filepath.Join(service.config.MediaPathPrefix, dir))
		}
	}

	log.Emit(logger.INFO, "Requesting media server scan of %v\n", paths)
	results, err := service.notifier.ScanPaths(ctx, paths)
	if err != nil {
		log.Emit(logger.WARNING, "Media server notification failed: %v\n", err)
	}
	for _, result := range results {
		log.Emit(logger.SUCCESS, "Media server scanned %s in library %s\n", result.Path, result.Library)
	}
}

func (service *Service) markBatch(batch []*TransferItem, state TransferItemState) {
	service.Lock()
	for _, item := range batch {
		item.State = state
	}
	service.Unlock()

	for _, item := range batch {
		service.eventBus.Dispatch(event.TRANSFER_UPDATE, item.ID)
	}
}

func (service *Service) findItem(itemID uuid.UUID) *TransferItem {
	for _, item := range service.items {
		if item.ID == itemID {
			return item
		}
	}

	return nil
}

func (service *Service) completedItems() []*TransferItem {
	completed := make([]*TransferItem, 0)
	for _, item := range service.items {
		if item.State.terminal() {
			completed = append(completed, item)
		}
	}

	return completed
}

// scanFileSizes walks the directory rooted at rootDirPath and returns
// the size of every file inside (including any in nested directories),
// keyed by absolute path.
func scanFileSizes(rootDirPath string) (map[string]int64, error) {
	sizes := make(map[string]int64)
	err := filepath.WalkDir(rootDirPath, func(path string, dir fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !dir.IsDir() {
			info, err := dir.Info()
			if err != nil {
				return err
			}

			sizes[path] = info.Size()
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk source path: %w", err)
	}

	return sizes, nil
}
