package jobs

import (
	"log"
	"time"

	"github.com/nairsand/voicebank/internal/storage"
)

// CleanupJob periodically removes expired and consumed OTPs
type CleanupJob struct {
	store     storage.Store
	interval  time.Duration
	isRunning bool
	stop      chan struct{}
}

// NewCleanupJob creates a new cleanup job scheduler
func NewCleanupJob(store storage.Store) *CleanupJob {
	return &CleanupJob{
		store:    store,
		interval: 15 * time.Minute,
		stop:     make(chan struct{}),
	}
}

// Start begins the scheduled cleanup
func (j *CleanupJob) Start() {
	if j.isRunning {
		log.Println("Cleanup job already running")
		return
	}

	j.isRunning = true
	log.Println("Starting OTP cleanup job...")

	go j.run()
}

// Stop halts the scheduled cleanup
func (j *CleanupJob) Stop() {
	if !j.isRunning {
		return
	}
	j.isRunning = false
	close(j.stop)
	log.Println("Stopping OTP cleanup job...")
}

func (j *CleanupJob) run() {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := j.store.DeleteExpiredOTPs(); err != nil {
				log.Printf("Failed to clean up expired OTPs: %v", err)
			}
		case <-j.stop:
			return
		}
	}
}
