package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (s *Server) newJob(kind, triggeredBy string) jobRun {
	return jobRun{
		ID:          uuid.NewString(),
		Kind:        kind,
		TriggeredBy: triggeredBy,
		Start:       time.Now(),
		Provider:    s.app.Ranking.Provider().Name(),
	}
}

func (s *Server) recordJob(j jobRun) {
	s.jobMu.Lock()
	defer s.jobMu.Unlock()
	s.jobHistory = append(s.jobHistory, j)
	if len(s.jobHistory) > maxJobHistory {
		s.jobHistory = s.jobHistory[len(s.jobHistory)-maxJobHistory:]
	}
	if j.Kind == "auto" {
		s.lastAutoRun = j.End
	}
}

func (s *Server) handleJobsStatus(c *gin.Context) {
	s.jobMu.Lock()
	history := make([]jobRun, len(s.jobHistory))
	copy(history, s.jobHistory)
	lastAuto := s.lastAutoRun
	s.jobMu.Unlock()

	var lastAutoStr string
	if !lastAuto.IsZero() {
		lastAutoStr = lastAuto.Format(time.RFC3339)
	}
	var latest map[string]interface{}
	if len(history) > 0 {
		latest = jobRunToMap(history[len(history)-1])
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"auto_interval": s.autoInterval.String(),
		"latest":        latest,
		"last_auto_end": optionalString(lastAutoStr),
	})
}

func (s *Server) handleJobsHistory(c *gin.Context) {
	s.jobMu.Lock()
	history := make([]jobRun, len(s.jobHistory))
	copy(history, s.jobHistory)
	s.jobMu.Unlock()

	data := make([]map[string]interface{}, len(history))
	for i, j := range history {
		// 新的在前
		data[len(history)-1-i] = jobRunToMap(j)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}
