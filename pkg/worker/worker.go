package worker

import (
	"sync"

	"github.com/oxholm/drift/pkg/logger"
)

var workerLogger = logger.Get("Worker")

type (
	WorkerWakeupChan chan int
	WorkerStatus     int

	// WorkFunc performs a single unit of work for a worker. The boolean
	// returned indicates whether any work was actually found; when no
	// work was available the worker goes back to sleep until woken.
	WorkFunc func(Worker) (bool, error)

	Worker interface {
		Start()
		Status() WorkerStatus
		WakeupChan() WorkerWakeupChan
		Label() string
		Close()
	}

	taskWorker struct {
		label      string
		work       WorkFunc
		wakeupChan WorkerWakeupChan

		// currentStatus is read by WakeupWorkers from other
		// goroutines, so access goes through statusMutex.
		statusMutex   sync.Mutex
		currentStatus WorkerStatus
	}
)

const (
	SLEEPING WorkerStatus = iota
	WORKING
	FINISHED
)

func NewWorker(label string, work WorkFunc) *taskWorker {
	return &taskWorker{
		label:         label,
		work:          work,
		wakeupChan:    make(WorkerWakeupChan),
		currentStatus: SLEEPING,
	}
}

// Start runs the workers work function repeatedly until it reports that
// no work was available, at which point the worker sleeps until it's
// woken up via it's wakeup channel. Start only returns once the wakeup
// channel is closed (see Close).
func (worker *taskWorker) Start() {
	workerLogger.Emit(logger.NEW, "Starting worker %s\n", worker.label)

	for {
		worker.setStatus(WORKING)
		if didWork, err := worker.work(worker); err != nil {
			workerLogger.Emit(logger.ERROR, "Worker %s reported an error (%T): %v\n", worker.label, err, err)
		} else if didWork {
			// There may be more work queued up, go around again
			// before sleeping.
			continue
		}

		if !worker.sleep() {
			return
		}
	}
}

func (worker *taskWorker) Status() WorkerStatus {
	worker.statusMutex.Lock()
	defer worker.statusMutex.Unlock()

	return worker.currentStatus
}

func (worker *taskWorker) setStatus(status WorkerStatus) {
	worker.statusMutex.Lock()
	defer worker.statusMutex.Unlock()

	worker.currentStatus = status
}

func (worker *taskWorker) WakeupChan() WorkerWakeupChan {
	return worker.wakeupChan
}

func (worker *taskWorker) Label() string {
	return worker.label
}

// Close closes the workers wakeup channel. Note that this does not
// interrupt a work function that is currently executing.
func (worker *taskWorker) Close() {
	close(worker.wakeupChan)
}

// sleep blocks until the wakeup channel is signalled from another
// goroutine. Returns false if the channel was closed, indicating the
// worker should quit.
func (worker *taskWorker) sleep() (isAlive bool) {
	worker.setStatus(SLEEPING)

	if _, isAlive = <-worker.wakeupChan; isAlive {
		worker.setStatus(WORKING)
	} else {
		workerLogger.Emit(logger.STOP, "Wakeup channel for worker %s closed - worker is exiting\n", worker.label)
		worker.setStatus(FINISHED)
	}

	return isAlive
}
