// Package parser reads and writes consensus event files. Three encodings
// are supported: a JSON array, JSON lines and a stream of msgpack maps.
package parser

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/hashicorp/go-msgpack/codec"
	"github.com/penwyp/go-consensus-timeline/internal/core/model"
	"github.com/penwyp/go-consensus-timeline/internal/util"
)

// Format is an event file encoding
type Format string

const (
	FormatJSON    Format = "json"
	FormatJSONL   Format = "jsonl"
	FormatMsgpack Format = "msgpack"
)

// ErrUnknownFormat is returned for file extensions without a decoder
var ErrUnknownFormat = errors.New("unknown event file format")

// DetectFormat picks the encoding from the file extension
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".jsonl", ".ndjson":
		return FormatJSONL, nil
	case ".msgpack", ".mp":
		return FormatMsgpack, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Result is the outcome of decoding one event file
type Result struct {
	File   string
	Events []model.Event
	// Skipped counts records that could not be decoded or failed validation
	Skipped int
	Error   error
}

// Parser decodes event files and caches results until the file changes
type Parser struct {
	concurrency int
	mu          sync.Mutex
	cache       map[string]cachedResult
}

type cachedResult struct {
	info   *util.FileInfo
	result *Result
}

// NewParser creates a parser decoding up to concurrency files at once
func NewParser(concurrency int) *Parser {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Parser{
		concurrency: concurrency,
		cache:       make(map[string]cachedResult),
	}
}

// ParseFile decodes the file at path. Results are reused while the file's
// size, mtime and inode stay the same.
func (p *Parser) ParseFile(path string) (*Result, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	info, statErr := util.GetFileInfo(path)
	if statErr == nil {
		p.mu.Lock()
		cached, ok := p.cache[path]
		p.mu.Unlock()
		if ok && *cached.info == *info {
			return cached.result, nil
		}
	}

	ctx := context.WithValue(context.Background(), util.ContextKeySource, filepath.Base(path))
	log := util.ContextLogger(ctx)
	log.Debugf("Start parsing file (%s)", format)

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open event file: %w", err)
	}
	defer file.Close()

	result, err := Decode(file, format)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	result.File = path

	if result.Skipped > 0 {
		log.Warn("skipped invalid records", util.Field{Key: "count", Value: result.Skipped})
	}

	if statErr == nil {
		p.mu.Lock()
		p.cache[path] = cachedResult{info: info, result: result}
		p.mu.Unlock()
	}
	return result, nil
}

// Invalidate forgets the cached result for path
func (p *Parser) Invalidate(path string) {
	p.mu.Lock()
	delete(p.cache, path)
	p.mu.Unlock()
}

// ParseFiles decodes several files concurrently. The results come back in
// the order of files.
func (p *Parser) ParseFiles(files []string) []Result {
	start := time.Now()
	results := make([]Result, len(files))
	var wg sync.WaitGroup

	util.LogDebugf("Start concurrent parsing of %d files, concurrency: %d", len(files), p.concurrency)

	semaphore := make(chan struct{}, p.concurrency)

	for i, file := range files {
		wg.Add(1)
		go func(i int, f string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			res, err := p.ParseFile(f)
			if err != nil {
				util.LogDebugf("File parsing failed: %s - %v", f, err)
				results[i] = Result{File: f, Error: err}
				return
			}
			results[i] = *res
		}(i, file)
	}

	wg.Wait()
	util.LogDebugf("Concurrent parsing finished, total duration: %v", time.Since(start))
	return results
}

// Merge concatenates the events of successful results in order, then
// stable-sorts them by timestamp. It returns the first error, if any.
func Merge(results []Result) ([]model.Event, int, error) {
	var (
		events  []model.Event
		skipped int
	)
	for _, r := range results {
		if r.Error != nil {
			return nil, 0, r.Error
		}
		events = append(events, r.Events...)
		skipped += r.Skipped
	}
	sortByTimestamp(events)
	return events, skipped, nil
}

// LoadEvents parses files and merges them into one time-ordered stream.
// Cached results are never reordered in place.
func (p *Parser) LoadEvents(files []string) ([]model.Event, int, error) {
	if len(files) == 1 {
		res, err := p.ParseFile(files[0])
		if err != nil {
			return nil, 0, err
		}
		events := append([]model.Event(nil), res.Events...)
		sortByTimestamp(events)
		return events, res.Skipped, nil
	}
	return Merge(p.ParseFiles(files))
}

// events with equal timestamps keep their file order
func sortByTimestamp(events []model.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp < events[j].Timestamp
	})
}

// Decode reads every event from r. Malformed or invalid records are
// counted in Skipped; only I/O failures and a broken JSON array are errors.
func Decode(r io.Reader, format Format) (*Result, error) {
	switch format {
	case FormatJSONL:
		return decodeJSONL(r)
	case FormatJSON:
		return decodeJSON(r)
	case FormatMsgpack:
		return decodeMsgpack(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func decodeJSONL(r io.Reader) (*Result, error) {
	result := &Result{Events: make([]model.Event, 0)}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	lineCount := 0
	for scanner.Scan() {
		lineCount++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var e model.Event
		if err := sonic.Unmarshal(line, &e); err != nil {
			util.LogDebugf("Skip invalid JSON line %d - %v", lineCount, err)
			result.Skipped++
			continue
		}
		accept(result, e, lineCount)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func decodeJSON(r io.Reader) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	result := &Result{Events: make([]model.Event, 0)}
	if len(bytes.TrimSpace(data)) == 0 {
		return result, nil
	}

	var raw []json.RawMessage
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("expected a JSON array of events: %w", err)
	}

	for i, item := range raw {
		var e model.Event
		if err := sonic.Unmarshal(item, &e); err != nil {
			util.LogDebugf("Skip invalid JSON record %d - %v", i, err)
			result.Skipped++
			continue
		}
		accept(result, e, i+1)
	}
	return result, nil
}

func decodeMsgpack(r io.Reader) (*Result, error) {
	result := &Result{Events: make([]model.Event, 0)}
	br := bufio.NewReader(r)
	dec := codec.NewDecoder(br, &codec.MsgpackHandle{})

	for i := 1; ; i++ {
		if _, err := br.Peek(1); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}

		var e model.Event
		if err := dec.Decode(&e); err != nil {
			// a corrupt msgpack stream cannot be resynchronized
			util.LogDebugf("Stop decoding msgpack at record %d - %v", i, err)
			result.Skipped++
			break
		}
		accept(result, e, i)
	}
	return result, nil
}

func accept(result *Result, e model.Event, record int) {
	if err := e.Validate(); err != nil {
		util.LogDebugf("Skip invalid event at record %d - %v", record, err)
		result.Skipped++
		return
	}
	result.Events = append(result.Events, e)
}
