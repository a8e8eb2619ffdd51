package httpapi

import (
	"log"
	"net/http"
	"time"

	"ranking-insight/internal/domain/ranking"

	"github.com/gin-gonic/gin"
)

const defaultBackfillDays = 30

func (s *Server) handleCollect(c *gin.Context) {
	job := s.newJob("collect", currentUserID(c))
	job.CollectRan = true
	saved, err := s.app.Collect(c.Request.Context())
	job.End = time.Now()
	job.Saved = saved
	if err != nil {
		job.CollectErr = err.Error()
		s.recordJob(job)
		log.Printf("collect failed user_id=%s err=%v", job.TriggeredBy, err)
		writeError(c, http.StatusBadGateway, errCodeInternal, "collect failed")
		return
	}
	job.CollectOK = true
	s.recordJob(job)
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"job_id":   job.ID,
		"saved":    saved,
		"provider": job.Provider,
	})
}

func (s *Server) handleBackfill(c *gin.Context) {
	body := backfillRequest{Days: defaultBackfillDays}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			writeError(c, http.StatusBadRequest, errCodeBadRequest, "invalid body")
			return
		}
	}
	if body.Days < 1 || body.Days > maxQueryDays {
		writeError(c, http.StatusBadRequest, errCodeBadRequest, "days must be between 1 and 365")
		return
	}

	job := s.newJob("backfill", currentUserID(c))
	job.CollectRan = true
	saved, err := s.app.Backfill(c.Request.Context(), body.Days)
	job.End = time.Now()
	job.Saved = saved
	if err != nil {
		job.CollectErr = err.Error()
		s.recordJob(job)
		if ranking.IsValidationError(err) {
			writeError(c, http.StatusBadRequest, errCodeBadRequest, err.Error())
			return
		}
		log.Printf("backfill failed days=%d err=%v", body.Days, err)
		writeError(c, http.StatusInternalServerError, errCodeInternal, "backfill failed")
		return
	}
	job.CollectOK = true
	s.recordJob(job)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"job_id":  job.ID,
		"days":    body.Days,
		"saved":   saved,
	})
}
