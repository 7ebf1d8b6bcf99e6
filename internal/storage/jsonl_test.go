package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"clankerSDK/internal/model"
)

func readLines(t *testing.T, path string) []string {
	t.Helper()
	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer file.Close()
	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines
}

func TestJsonlStorageAppendsPerKind(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	s := NewJsonlStorage(dir)
	ctx := context.Background()

	tokens := []model.TokenCreated{
		{Version: "v4", TokenAddress: "0x01", Name: "A"},
		{Version: "v3.1", TokenAddress: "0x02", Name: "B"},
	}
	if err := s.PutTokens(ctx, tokens[:1]); err != nil {
		t.Fatalf("put tokens: %v", err)
	}
	if err := s.PutTokens(ctx, tokens[1:]); err != nil {
		t.Fatalf("put tokens: %v", err)
	}
	if err := s.PutDecodeErrors(ctx, nil); err != nil {
		t.Fatalf("put empty batch: %v", err)
	}
	if err := s.PutDeployment(ctx, model.Deployment{ID: "id-1", CreatedAt: time.Unix(0, 0).UTC(), Name: "A"}); err != nil {
		t.Fatalf("put deployment: %v", err)
	}

	lines := readLines(t, s.Path(tokensFile))
	if len(lines) != 2 {
		t.Fatalf("expected 2 token lines, got %d", len(lines))
	}
	var second model.TokenCreated
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatalf("decode line: %v", err)
	}
	if second.Name != "B" || second.Version != "v3.1" {
		t.Fatalf("unexpected record %+v", second)
	}
	if _, err := os.Stat(s.Path(decodeErrorsFile)); !os.IsNotExist(err) {
		t.Fatalf("empty batch must not create a file, got %v", err)
	}
	if lines := readLines(t, s.Path(deploymentsFile)); len(lines) != 1 {
		t.Fatalf("expected 1 deployment line, got %d", len(lines))
	}
}
