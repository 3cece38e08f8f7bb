package suggest

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/sahilm/fuzzy"

	"github.com/vanderheijden86/glidetype/pkg/metrics"
	"github.com/vanderheijden86/glidetype/pkg/trace"
)

// Entry is one dictionary word with its corpus frequency.
type Entry struct {
	Word string `json:"w"`
	Freq int64  `json:"f"`
}

// LoadOptions controls dictionary parsing.
type LoadOptions struct {
	// WarningHandler receives a message per skipped malformed line.
	WarningHandler func(msg string)
	// MaxWords caps the number of entries loaded; 0 means unlimited.
	MaxWords int
}

// Dictionary is a frequency-ranked word list. Reload swaps the word set
// atomically, so a Suggest racing a reload sees either the old or the new
// set, never a mix.
type Dictionary struct {
	mu      sync.RWMutex
	entries []Entry // sorted by word for prefix scans
	byWord  map[string]int64
}

// LoadDictionary reads a JSONL frequency dictionary: one object per line,
// {"w":"the","f":23135851162}. Malformed lines are skipped with a warning,
// not treated as errors.
func LoadDictionary(path string, opts LoadOptions) (*Dictionary, error) {
	d := &Dictionary{}
	if err := d.load(path, opts); err != nil {
		return nil, err
	}
	return d, nil
}

// ParseDictionary reads a JSONL frequency dictionary from r. Used for
// embedded or in-memory word lists.
func ParseDictionary(r io.Reader, opts LoadOptions) (*Dictionary, error) {
	d := &Dictionary{}
	if err := d.parse(r, opts); err != nil {
		return nil, err
	}
	return d, nil
}

// Reload re-reads the dictionary file and swaps in the new word set.
// On error the previous set is kept.
func (d *Dictionary) Reload(path string, opts LoadOptions) error {
	return d.load(path, opts)
}

func (d *Dictionary) load(path string, opts LoadOptions) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening dictionary: %w", err)
	}
	defer f.Close()
	return d.parse(f, opts)
}

func (d *Dictionary) parse(r io.Reader, opts LoadOptions) error {
	defer metrics.Timer(metrics.DictionaryLoad)()

	warn := opts.WarningHandler
	if warn == nil {
		warn = func(string) {}
	}

	var entries []Entry
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var e Entry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			warn(fmt.Sprintf("line %d: %v", lineNo, err))
			continue
		}
		e.Word = strings.ToLower(strings.TrimSpace(e.Word))
		if e.Word == "" {
			warn(fmt.Sprintf("line %d: empty word", lineNo))
			continue
		}
		entries = append(entries, e)
		if opts.MaxWords > 0 && len(entries) >= opts.MaxWords {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading dictionary: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Word < entries[j].Word })
	byWord := make(map[string]int64, len(entries))
	for _, e := range entries {
		byWord[e.Word] = e.Freq
	}

	d.mu.Lock()
	d.entries = entries
	d.byWord = byWord
	d.mu.Unlock()
	return nil
}

// Len returns the number of loaded words.
func (d *Dictionary) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.entries)
}

// prefixRange returns the entries whose word starts with prefix.
func (d *Dictionary) prefixRange(prefix string) []Entry {
	d.mu.RLock()
	defer d.mu.RUnlock()

	lo := sort.Search(len(d.entries), func(i int) bool {
		return d.entries[i].Word >= prefix
	})
	hi := lo
	for hi < len(d.entries) && strings.HasPrefix(d.entries[hi].Word, prefix) {
		hi++
	}
	out := make([]Entry, hi-lo)
	copy(out, d.entries[lo:hi])
	return out
}

// snapshot returns the current entry slice. Read-only; callers must not
// mutate it.
func (d *Dictionary) snapshot() []Entry {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.entries
}

// DictionarySuggester ranks dictionary words against a pointer trace.
type DictionarySuggester struct {
	dict   *Dictionary
	layout Layout
	max    int
}

// NewDictionarySuggester creates a suggester over a loaded dictionary.
// max caps the returned list length; max <= 0 means 5.
func NewDictionarySuggester(dict *Dictionary, layout Layout, max int) *DictionarySuggester {
	if max <= 0 {
		max = 5
	}
	return &DictionarySuggester{dict: dict, layout: layout, max: max}
}

// Suggest computes ranked candidates for the trace. For SessionTyping each
// sample is a discrete tap decoded to a letter prefix; for SessionGesture
// the trace is decoded to a swept key path and words are matched against it.
// May return an empty list.
func (s *DictionarySuggester) Suggest(sessionID int, tr trace.Trace) List {
	switch sessionID {
	case SessionGesture:
		return s.suggestGesture(tr)
	default:
		return s.suggestTyping(tr)
	}
}

func (s *DictionarySuggester) suggestTyping(tr trace.Trace) List {
	prefix := s.decodeTaps(tr)
	if prefix == "" {
		return nil
	}

	candidates := s.dict.prefixRange(prefix)
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Freq != candidates[j].Freq {
			return candidates[i].Freq > candidates[j].Freq
		}
		return candidates[i].Word < candidates[j].Word
	})

	return toList(candidates, s.max)
}

func (s *DictionarySuggester) suggestGesture(tr trace.Trace) List {
	keyPath := s.decodePath(tr)
	if len(keyPath) < 2 {
		return nil
	}

	first := keyPath[0]
	last := keyPath[len(keyPath)-1]

	// A word can be produced by this gesture if its letters appear in order
	// along the swept key path and it starts and ends on the path endpoints.
	type scored struct {
		word  string
		score int64
	}
	var cands []scored
	for _, e := range s.dict.snapshot() {
		if len(e.Word) < 2 {
			continue
		}
		if e.Word[0] != byte(first) || e.Word[len(e.Word)-1] != byte(last) {
			continue
		}
		matches := fuzzy.Find(e.Word, []string{string(keyPath)})
		if len(matches) == 0 {
			continue
		}
		cands = append(cands, scored{word: e.Word, score: e.Freq + int64(matches[0].Score)})
	}

	sort.Slice(cands, func(i, j int) bool {
		if cands[i].score != cands[j].score {
			return cands[i].score > cands[j].score
		}
		return cands[i].word < cands[j].word
	})

	out := make(List, 0, s.max)
	for _, c := range cands {
		out = append(out, c.word)
		if len(out) == s.max {
			break
		}
	}
	return out
}

// decodeTaps maps each sample to its nearest key, treating the trace as a
// sequence of discrete taps.
func (s *DictionarySuggester) decodeTaps(tr trace.Trace) string {
	var b strings.Builder
	for _, sm := range tr {
		k, ok := s.layout.NearestKey(sm.X, sm.Y)
		if !ok {
			continue
		}
		b.WriteRune(k.R)
	}
	return b.String()
}

// decodePath resamples the trace and collapses consecutive duplicate keys
// into the swept key sequence.
func (s *DictionarySuggester) decodePath(tr trace.Trace) []rune {
	defer metrics.Timer(metrics.GestureDecode)()

	const samples = 48
	var path []rune
	for _, sm := range tr.Resample(samples) {
		k, ok := s.layout.NearestKey(sm.X, sm.Y)
		if !ok {
			continue
		}
		if len(path) > 0 && path[len(path)-1] == k.R {
			continue
		}
		path = append(path, k.R)
	}
	return path
}

func toList(entries []Entry, max int) List {
	out := make(List, 0, max)
	for _, e := range entries {
		out = append(out, e.Word)
		if len(out) == max {
			break
		}
	}
	return out
}
