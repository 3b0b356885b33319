package fixtures

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-consensus-timeline/internal/core/model"
)

// WriteJSONL writes events one per line into dir/name and returns the path
func WriteJSONL(t testing.TB, dir, name string, events []model.Event) string {
	t.Helper()

	var data []byte
	for _, e := range events {
		line, err := sonic.Marshal(e)
		if err != nil {
			t.Fatalf("marshal event: %v", err)
		}
		data = append(data, line...)
		data = append(data, '\n')
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// AppendJSONL appends events to an existing JSONL file
func AppendJSONL(t testing.TB, path string, events []model.Event) {
	t.Helper()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()

	for _, e := range events {
		line, err := sonic.Marshal(e)
		if err != nil {
			t.Fatalf("marshal event: %v", err)
		}
		if _, err := f.Write(append(line, '\n')); err != nil {
			t.Fatalf("append %s: %v", path, err)
		}
	}
}

// Window returns a deterministic stream spanning [start, start+span] with
// one exchange every step milliseconds between alternating nodes
func Window(start, span, step int64) []model.Event {
	var events []model.Event
	nodes := []string{"N0", "N1", "N2"}
	for i, ts := 0, start; ts+10 <= start+span; i, ts = i+1, ts+step {
		from := nodes[i%len(nodes)]
		to := nodes[(i+1)%len(nodes)]
		events = append(events, Exchange(from, to, model.MessageVote, 10, 1, ts, ts+10)...)
	}
	return events
}
