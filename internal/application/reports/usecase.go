package reports

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"ranking-insight/internal"
	"ranking-insight/internal/domain/ranking"

	"github.com/google/uuid"
)

var (
	// ErrReportNotFound 表示報表檔不存在。
	ErrReportNotFound = errors.New("report not found")
	// ErrInvalidFilename 表示檔名含路徑或不是 xlsx。
	ErrInvalidFilename = errors.New("invalid report filename")
)

// Uploader 封存產生的報表，回傳封存位置。
type Uploader interface {
	Upload(ctx context.Context, filename string, body []byte) (string, error)
}

// Report 為一份已產生的報表。
type Report struct {
	ID        string    `json:"id,omitempty"`
	Filename  string    `json:"filename"`
	Path      string    `json:"path"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
	Location  string    `json:"location,omitempty"`
}

// UseCase 產生、列出與取得排名報表。
type UseCase struct {
	outputDir  string
	brand      string
	categories []string
	uploader   Uploader
	now        func() time.Time
}

// NewUseCase 建立報表用例；uploader 可為 nil。
func NewUseCase(outputDir, brand string, uploader Uploader) *UseCase {
	if outputDir == "" {
		outputDir = "output"
	}
	if internal.IsNil(uploader) {
		uploader = nil
	}
	return &UseCase{
		outputDir:  outputDir,
		brand:      brand,
		categories: ranking.Categories,
		uploader:   uploader,
		now:        time.Now,
	}
}

// Generate 寫出活頁簿；S3 上傳失敗只記錄，不影響本地報表。
func (u *UseCase) Generate(ctx context.Context, tables map[string]ranking.RankTable) (Report, error) {
	if err := os.MkdirAll(u.outputDir, 0o755); err != nil {
		return Report{}, fmt.Errorf("create output dir: %w", err)
	}
	now := u.now()
	writer := NewExcelWriter(u.brand)
	writer.now = u.now
	body, err := writer.Write(tables, u.orderedCategories(tables))
	if err != nil {
		return Report{}, fmt.Errorf("write workbook: %w", err)
	}

	filename := fmt.Sprintf("ranking_report_%s.xlsx", now.Format("20060102_150405"))
	path := filepath.Join(u.outputDir, filename)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return Report{}, fmt.Errorf("save workbook: %w", err)
	}
	rep := Report{
		ID:        uuid.NewString(),
		Filename:  filename,
		Path:      path,
		Size:      int64(len(body)),
		CreatedAt: now,
	}
	if u.uploader != nil {
		loc, err := u.uploader.Upload(ctx, filename, body)
		if err != nil {
			log.Printf("report upload failed file=%s err=%v", filename, err)
		} else {
			rep.Location = loc
		}
	}
	log.Printf("report generated file=%s size=%d", filename, rep.Size)
	return rep, nil
}

// orderedCategories 以固定類別順序為主，附加其他出現在資料中的類別。
func (u *UseCase) orderedCategories(tables map[string]ranking.RankTable) []string {
	out := make([]string, 0, len(tables))
	seen := make(map[string]bool)
	for _, c := range u.categories {
		if _, ok := tables[c]; ok {
			out = append(out, c)
			seen[c] = true
		}
	}
	var rest []string
	for c := range tables {
		if !seen[c] {
			rest = append(rest, c)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

// List 依修改時間由新到舊列出 xlsx 報表。
func (u *UseCase) List() ([]Report, error) {
	entries, err := os.ReadDir(u.outputDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Report{}, nil
		}
		return nil, err
	}
	out := []Report{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".xlsx") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, Report{
			Filename:  e.Name(),
			Path:      filepath.Join(u.outputDir, e.Name()),
			Size:      info.Size(),
			CreatedAt: info.ModTime(),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Filename > out[j].Filename
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Open 回傳報表路徑，只接受輸出目錄下的 xlsx 檔名。
func (u *UseCase) Open(filename string) (string, error) {
	if filename == "" || filename != filepath.Base(filename) || strings.Contains(filename, "..") || !strings.HasSuffix(filename, ".xlsx") {
		return "", ErrInvalidFilename
	}
	path := filepath.Join(u.outputDir, filename)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", ErrReportNotFound
	}
	return path, nil
}
