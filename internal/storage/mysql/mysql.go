package mysql

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"

	"mrp-sched/internal/config"
)

type Storage struct {
	db *sql.DB
}

func New(cfg config.Config) (*Storage, error) {
	const op = "storage.mysql.New"

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBName,
	)
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

// chunkSize bounds IN-list length; the ERP mirror chokes on huge
// placeholder lists.
const chunkSize = 800

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func chunkStrings(items []string) [][]string {
	var chunks [][]string
	for len(items) > chunkSize {
		chunks = append(chunks, items[:chunkSize])
		items = items[chunkSize:]
	}
	if len(items) > 0 {
		chunks = append(chunks, items)
	}
	return chunks
}

func chunkInt64(items []int64) [][]int64 {
	var chunks [][]int64
	for len(items) > chunkSize {
		chunks = append(chunks, items[:chunkSize])
		items = items[chunkSize:]
	}
	if len(items) > 0 {
		chunks = append(chunks, items)
	}
	return chunks
}
