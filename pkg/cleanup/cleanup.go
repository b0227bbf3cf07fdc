package cleanup

import (
	"log"
	"time"
)

// IssueRetentionRepository deletes resolved issues older than a cutoff.
type IssueRetentionRepository interface {
	DeleteResolvedBefore(cutoff time.Time) (int64, error)
}

// CleanupService periodically purges resolved issues past their retention
// window so the issues collection does not grow without bound.
type CleanupService struct {
	issueRepo IssueRetentionRepository
	interval  time.Duration
	retention time.Duration
	stopChan  chan bool
}

func NewCleanupService(issueRepo IssueRetentionRepository, interval, retention time.Duration) *CleanupService {
	return &CleanupService{
		issueRepo: issueRepo,
		interval:  interval,
		retention: retention,
		stopChan:  make(chan bool),
	}
}

// Start begins the cleanup service
func (s *CleanupService) Start() {
	log.Printf("Starting resolved issue cleanup service (interval: %v, retention: %v)", s.interval, s.retention)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Run cleanup immediately on start
	s.cleanupResolvedIssues()

	for {
		select {
		case <-ticker.C:
			s.cleanupResolvedIssues()
		case <-s.stopChan:
			log.Println("Stopping resolved issue cleanup service")
			return
		}
	}
}

// Stop stops the cleanup service
func (s *CleanupService) Stop() {
	s.stopChan <- true
}

func (s *CleanupService) cleanupResolvedIssues() {
	cutoff := time.Now().Add(-s.retention)

	count, err := s.issueRepo.DeleteResolvedBefore(cutoff)
	if err != nil {
		log.Printf("Error cleaning up resolved issues: %v", err)
		return
	}

	if count > 0 {
		log.Printf("Cleaned up %d resolved issues older than %v", count, cutoff.Format(time.RFC3339))
	}
}
