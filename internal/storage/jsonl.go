package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"clankerSDK/internal/model"
)

const (
	tokensFile       = "tokens.jsonl"
	decodeErrorsFile = "decode_errors.jsonl"
	deploymentsFile  = "deployments.jsonl"
)

// JsonlStorage appends records to one JSONL file per record kind under dir.
type JsonlStorage struct {
	dir string
	mu  sync.Mutex
}

func NewJsonlStorage(dir string) *JsonlStorage {
	return &JsonlStorage{dir: dir}
}

// Path returns the file a record kind is written to.
func (s *JsonlStorage) Path(name string) string {
	return filepath.Join(s.dir, name)
}

func (s *JsonlStorage) PutTokens(ctx context.Context, tokens []model.TokenCreated) error {
	rows := make([]interface{}, len(tokens))
	for i := range tokens {
		rows[i] = tokens[i]
	}
	return s.append(tokensFile, rows)
}

func (s *JsonlStorage) PutDecodeErrors(ctx context.Context, records []model.DecodeError) error {
	rows := make([]interface{}, len(records))
	for i := range records {
		rows[i] = records[i]
	}
	return s.append(decodeErrorsFile, rows)
}

func (s *JsonlStorage) PutDeployment(ctx context.Context, d model.Deployment) error {
	return s.append(deploymentsFile, []interface{}{d})
}

func (s *JsonlStorage) append(name string, rows []interface{}) error {
	if len(rows) == 0 {
		return nil
	}
	if s.dir != "" && s.dir != "." {
		if err := os.MkdirAll(s.dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.OpenFile(s.Path(name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for _, row := range rows {
		line, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("marshal %s record: %w", name, err)
		}
		if _, err := writer.Write(line); err != nil {
			return fmt.Errorf("write %s record: %w", name, err)
		}
		if err := writer.WriteByte('\n'); err != nil {
			return fmt.Errorf("write newline: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", name, err)
	}
	return nil
}
