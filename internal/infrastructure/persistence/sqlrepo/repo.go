package sqlrepo

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"time"

	"ranking-insight/internal/domain/ranking"
)

// Dialect 區分 SQL 方言。
type Dialect int

const (
	DialectPostgres Dialect = iota
	DialectSQLite
)

// DialectFor 依 driver 名稱選擇方言。
func DialectFor(driver string) Dialect {
	if driver == "pgx" || driver == "postgres" || driver == "postgresql" {
		return DialectPostgres
	}
	return DialectSQLite
}

var placeholder = regexp.MustCompile(`\$\d+`)

// Repo 提供排名歷史的 SQL 存取。
type Repo struct {
	db      *sql.DB
	dialect Dialect
}

// NewRepo 建立 SQL 資料存取實例。
func NewRepo(db *sql.DB, dialect Dialect) *Repo {
	return &Repo{db: db, dialect: dialect}
}

// rebind 將 $N 佔位符轉成 SQLite 的 ?；查詢中的參數需依序各出現一次。
func (r *Repo) rebind(q string) string {
	if r.dialect == DialectPostgres {
		return q
	}
	return placeholder.ReplaceAllString(q, "?")
}

func (r *Repo) schema() []string {
	id := "BIGSERIAL PRIMARY KEY"
	if r.dialect == DialectSQLite {
		id = "INTEGER PRIMARY KEY AUTOINCREMENT"
	}
	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS ranking_history (
    id %s,
    ranking_date DATE NOT NULL,
    category VARCHAR(50) NOT NULL,
    product_id VARCHAR(100) NOT NULL,
    product_name VARCHAR(255) NOT NULL,
    brand VARCHAR(100) NOT NULL,
    rank INTEGER NOT NULL,
    is_focus_brand BOOLEAN NOT NULL DEFAULT FALSE,
    price DOUBLE PRECISION NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`, id),
		`CREATE INDEX IF NOT EXISTS ix_ranking_date_category ON ranking_history (ranking_date, category)`,
		`CREATE INDEX IF NOT EXISTS ix_ranking_product_date ON ranking_history (product_name, ranking_date)`,
		`CREATE TABLE IF NOT EXISTS users (
    id VARCHAR(64) PRIMARY KEY,
    email VARCHAR(255) NOT NULL UNIQUE,
    display_name VARCHAR(255) NOT NULL DEFAULT '',
    password_hash VARCHAR(255) NOT NULL,
    role VARCHAR(32) NOT NULL,
    status VARCHAR(32) NOT NULL DEFAULT 'active'
)`,
	}
}

// EnsureSchema 建立資料表與索引（已存在則略過）。
func (r *Repo) EnsureSchema(ctx context.Context) error {
	for _, stmt := range r.schema() {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// dateValue 接受 driver 回傳的 time.Time、字串或位元組。
type dateValue struct {
	t time.Time
}

func (d *dateValue) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		d.t = ranking.DateOnly(v)
		return nil
	case string:
		return d.parse(v)
	case []byte:
		return d.parse(string(v))
	case nil:
		return fmt.Errorf("ranking_date is null")
	default:
		return fmt.Errorf("unsupported date type %T", src)
	}
}

func (d *dateValue) parse(s string) error {
	if len(s) >= len(ranking.DateLayout) {
		s = s[:len(ranking.DateLayout)]
	}
	t, err := time.Parse(ranking.DateLayout, s)
	if err != nil {
		return err
	}
	d.t = t
	return nil
}

func dateArg(t time.Time) string {
	return t.Format(ranking.DateLayout)
}

// Save 在交易內先刪除同日同類別的資料再逐筆寫入，回傳寫入筆數。
func (r *Repo) Save(ctx context.Context, date time.Time, category string, rows []ranking.RankRecord) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	const del = `DELETE FROM ranking_history WHERE ranking_date = $1 AND category = $2`
	if _, err := tx.ExecContext(ctx, r.rebind(del), dateArg(date), category); err != nil {
		return 0, fmt.Errorf("delete partition: %w", err)
	}

	const ins = `
INSERT INTO ranking_history (ranking_date, category, product_id, product_name, brand, rank, is_focus_brand, price)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	stmt, err := tx.PrepareContext(ctx, r.rebind(ins))
	if err != nil {
		return 0, err
	}
	defer stmt.Close()
	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx, dateArg(date), category, row.ProductID, row.ProductName, row.Brand, row.Rank, row.IsFocusBrand, row.Price); err != nil {
			return 0, fmt.Errorf("insert %s: %w", row.ProductName, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(rows), nil
}

const selectRecord = `
SELECT ranking_date, category, product_id, product_name, brand, rank, is_focus_brand, price
FROM ranking_history`

// LoadRange 讀取 [start, end] 的紀錄；category 為空表示全部。
func (r *Repo) LoadRange(ctx context.Context, start, end time.Time, category string) ([]ranking.RankRecord, error) {
	q := selectRecord + ` WHERE ranking_date >= $1 AND ranking_date <= $2`
	args := []interface{}{dateArg(start), dateArg(end)}
	if category != "" {
		q += ` AND category = $3`
		args = append(args, category)
	}
	q += ` ORDER BY ranking_date, category, rank`
	return r.queryRecords(ctx, q, args...)
}

// ProductRange 以商品名稱精確比對，依日期排序。
func (r *Repo) ProductRange(ctx context.Context, productName string, start, end time.Time) ([]ranking.RankRecord, error) {
	q := selectRecord + ` WHERE product_name = $1 AND ranking_date >= $2 AND ranking_date <= $3 ORDER BY ranking_date`
	return r.queryRecords(ctx, q, productName, dateArg(start), dateArg(end))
}

func (r *Repo) queryRecords(ctx context.Context, q string, args ...interface{}) ([]ranking.RankRecord, error) {
	rows, err := r.db.QueryContext(ctx, r.rebind(q), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ranking.RankRecord
	for rows.Next() {
		var rec ranking.RankRecord
		var d dateValue
		if err := rows.Scan(&d, &rec.Category, &rec.ProductID, &rec.ProductName, &rec.Brand, &rec.Rank, &rec.IsFocusBrand, &rec.Price); err != nil {
			return nil, err
		}
		rec.Date = d.t
		out = append(out, rec)
	}
	return out, rows.Err()
}

// DistinctCategories 回傳所有出現過的類別。
func (r *Repo) DistinctCategories(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT category FROM ranking_history ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// DistinctDates 回傳排序後的日期；category 為空表示全部。
func (r *Repo) DistinctDates(ctx context.Context, category string) ([]time.Time, error) {
	q := `SELECT DISTINCT ranking_date FROM ranking_history`
	var args []interface{}
	if category != "" {
		q += ` WHERE category = $1`
		args = append(args, category)
	}
	q += ` ORDER BY ranking_date`
	rows, err := r.db.QueryContext(ctx, r.rebind(q), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []time.Time
	for rows.Next() {
		var d dateValue
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		out = append(out, d.t)
	}
	return out, rows.Err()
}

// CountRecords 回傳總筆數。
func (r *Repo) CountRecords(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM ranking_history`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// HasData 表示某日（及類別）是否有紀錄。
func (r *Repo) HasData(ctx context.Context, date time.Time, category string) (bool, error) {
	q := `SELECT COUNT(*) FROM ranking_history WHERE ranking_date = $1`
	args := []interface{}{dateArg(date)}
	if category != "" {
		q += ` AND category = $2`
		args = append(args, category)
	}
	var n int
	if err := r.db.QueryRowContext(ctx, r.rebind(q), args...).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}
