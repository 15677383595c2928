package cleanup

import (
	log "github.com/sirupsen/logrus"
	"os"
	"os/signal"
	"sort"
	"sync"
	"syscall"
)

// Hook keys, run in ascending order on stop.
const (
	Echo = iota
	Discord
)

type OnStop func(sig os.Signal)

type stop struct {
	isStopping bool
	mutex      sync.Mutex
	onStopFunc map[int]OnStop
}

var quitInstance = &stop{
	onStopFunc: make(map[int]OnStop),
}

// AddOnStopFunc registers f under key. If a stop is already in progress f
// runs immediately.
func AddOnStopFunc(key int, f OnStop) {
	quitInstance.mutex.Lock()
	defer quitInstance.mutex.Unlock()
	quitInstance.onStopFunc[key] = f
	if quitInstance.isStopping {
		f(syscall.SIGTERM)
		delete(quitInstance.onStopFunc, key)
	}
}

// Stop runs every registered hook once, in key order.
func Stop(sig os.Signal) {
	quitInstance.mutex.Lock()
	defer quitInstance.mutex.Unlock()
	quitInstance.isStopping = true
	log.Warnf("Received signal %v, terminating...", sig)
	keys := make([]int, 0, len(quitInstance.onStopFunc))
	for k := range quitInstance.onStopFunc {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		quitInstance.onStopFunc[k](sig)
		delete(quitInstance.onStopFunc, k)
	}
}

// RunStopFunc runs and removes the hooks for keys without marking the
// process as stopping.
func RunStopFunc(sig os.Signal, keys ...int) {
	quitInstance.mutex.Lock()
	defer quitInstance.mutex.Unlock()
	for _, key := range keys {
		if f, ok := quitInstance.onStopFunc[key]; ok {
			f(sig)
			delete(quitInstance.onStopFunc, key)
		}
	}
}

func InitSignalCallback() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT)
	go func() {
		sig := <-sigChan
		Stop(sig)
	}()
}
