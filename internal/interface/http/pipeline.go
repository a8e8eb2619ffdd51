package httpapi

import (
	"context"
	"log"
	"time"
)

// startAutoPipeline 每隔 autoInterval 補收今日資料、更新洞察並推送摘要。
func (s *Server) startAutoPipeline(ctx context.Context) {
	ticker := time.NewTicker(s.autoInterval)
	defer ticker.Stop()

	log.Printf("[Pipeline] auto pipeline started interval=%s", s.autoInterval)
	for {
		select {
		case <-ctx.Done():
			log.Printf("[Pipeline] stopped")
			return
		case <-ticker.C:
			s.runPipelineOnce(ctx)
		}
	}
}

func (s *Server) runPipelineOnce(ctx context.Context) jobRun {
	job := s.newJob("auto", "system")

	collected, err := s.app.Ranking.EnsureTodayData(ctx)
	job.CollectRan = collected
	if err != nil {
		job.CollectErr = err.Error()
		log.Printf("[Pipeline] ensure today data failed: %v", err)
	} else {
		job.CollectOK = true
	}

	if ins, err := s.app.RefreshInsights(ctx); err != nil {
		job.InsightsErr = err.Error()
		log.Printf("[Pipeline] insights refresh failed: %v", err)
	} else {
		job.InsightsSource = ins.Source
	}

	if collected {
		sent, err := s.app.SendDigest(ctx)
		if err != nil {
			log.Printf("[Pipeline] digest failed: %v", err)
		}
		job.DigestSent = sent
	}

	job.End = time.Now()
	s.recordJob(job)
	return job
}
