package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"sync"
	"time"

	"github.com/NotSooShariff/adversarial-vision/internal/logging"
)

var (
	// MemorySampleRate How often to dump the memory to a file in HZ. Values of less than 1 are recommended to avoid
	// having to sort through too many dump files
	MemorySampleRate = 0.5

	cpuProfiler *CPUProfilerStruct
	memProfiler *MemProfilerStruct
)

type CPUProfilerStruct struct {
	profileOutput io.WriteCloser
}

type MemProfilerStruct struct {
	dumpPath           string
	mu                 sync.Mutex
	heapDumps          [][]byte
	shouldProfilerStop chan struct{}
	stopped            chan struct{}
}

// StartCPUProfiler writes a CPU profile to profilePath until StopCPUProfiler
// is called.
func StartCPUProfiler(profilePath string) error {
	profileOutput, err := os.Create(profilePath)
	if err != nil {
		return fmt.Errorf("creating cpu profile: %w", err)
	}

	runtime.SetCPUProfileRate(500)
	if err := pprof.StartCPUProfile(profileOutput); err != nil {
		_ = profileOutput.Close()
		return fmt.Errorf("starting cpu profiler: %w", err)
	}
	cpuProfiler = &CPUProfilerStruct{profileOutput: profileOutput}
	return nil
}

func StopCPUProfiler() {
	if cpuProfiler == nil {
		return
	}
	pprof.StopCPUProfile()
	if err := cpuProfiler.profileOutput.Close(); err != nil {
		logging.BuildLogger().WithError(err).Error("Error closing CPU profile")
	}
	cpuProfiler = nil
}

// StartMemoryProfiler samples the heap every 1/MemorySampleRate seconds and
// keeps the dumps in memory until StopMemoryProfiler writes them to
// profileDumpPath.
func StartMemoryProfiler(profileDumpPath string) {
	if MemorySampleRate <= 0 {
		return
	}

	memProfiler = &MemProfilerStruct{
		dumpPath:           profileDumpPath,
		shouldProfilerStop: make(chan struct{}),
		stopped:            make(chan struct{}),
	}

	go func(p *MemProfilerStruct) {
		defer close(p.stopped)
		ticker := time.NewTicker(time.Duration((1/MemorySampleRate)*1000) * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-p.shouldProfilerStop:
				return
			case <-ticker.C:
				p.dump()
			}
		}
	}(memProfiler)
}

func (p *MemProfilerStruct) dump() {
	w := bytes.NewBuffer(nil)
	if err := pprof.WriteHeapProfile(w); err != nil {
		logging.BuildLogger().WithError(err).Error("Error writing heap profile")
		return
	}
	p.mu.Lock()
	p.heapDumps = append(p.heapDumps, w.Bytes())
	p.mu.Unlock()
}

func StopMemoryProfiler() error {
	if memProfiler == nil {
		return nil
	}
	p := memProfiler
	memProfiler = nil

	close(p.shouldProfilerStop)
	<-p.stopped
	p.dump()

	if err := os.MkdirAll(p.dumpPath, 0o755); err != nil {
		return fmt.Errorf("creating memory profile directory: %w", err)
	}
	for dIdx, dump := range p.heapDumps {
		err := os.WriteFile(filepath.Join(p.dumpPath, fmt.Sprintf("mem-%d.mprof", dIdx)), dump, 0o644)
		if err != nil {
			return fmt.Errorf("writing memory profile: %w", err)
		}
	}
	return nil
}
