package httpapi

import (
	"errors"
	"log"
	"net/http"
	"time"

	"ranking-insight/internal/application/reports"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) handleListReports(c *gin.Context) {
	list, err := s.app.Reports.List()
	if err != nil {
		log.Printf("list reports failed err=%v", err)
		writeError(c, http.StatusInternalServerError, errCodeInternal, "list reports failed")
		return
	}
	if list == nil {
		list = []reports.Report{}
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) handleDownloadReport(c *gin.Context) {
	filename := c.Param("filename")
	path, err := s.app.Reports.Open(filename)
	switch {
	case errors.Is(err, reports.ErrInvalidFilename):
		writeError(c, http.StatusBadRequest, errCodeBadRequest, "invalid filename")
		return
	case errors.Is(err, reports.ErrReportNotFound):
		writeError(c, http.StatusNotFound, errCodeNotFound, "report not found")
		return
	case err != nil:
		writeError(c, http.StatusInternalServerError, errCodeInternal, "open report failed")
		return
	}
	c.Header("Content-Type", xlsxContentType)
	c.FileAttachment(path, filename)
}

func (s *Server) handleGenerateReport(c *gin.Context) {
	job := s.newJob("report", currentUserID(c))
	rep, err := s.app.GenerateReport(c.Request.Context())
	job.End = time.Now()
	if err != nil {
		job.Err = err.Error()
		s.recordJob(job)
		log.Printf("generate report failed err=%v", err)
		writeError(c, http.StatusInternalServerError, errCodeInternal, "generate report failed")
		return
	}
	job.Report = rep.Filename
	s.recordJob(job)
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"report":   rep,
		"filename": rep.Filename,
	})
}
