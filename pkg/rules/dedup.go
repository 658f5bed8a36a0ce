package rules

// DedupTracker remembers the first file seen for each content hash during
// one run. The zero value is ready to use. It has a single owner and is not
// safe for concurrent use.
type DedupTracker struct {
	seen map[string]string
}

func NewDedupTracker() *DedupTracker {
	return &DedupTracker{seen: make(map[string]string)}
}

// Seen returns the path first recorded for hash.
func (t *DedupTracker) Seen(hash string) (string, bool) {
	p, ok := t.seen[hash]
	return p, ok
}

// Record stores path as the original for hash unless one is already known.
func (t *DedupTracker) Record(hash, path string) {
	t.init()
	if _, ok := t.seen[hash]; !ok {
		t.seen[hash] = path
	}
}

// CheckAndRecord returns the original path and true when hash was already
// seen; otherwise it records path and returns false.
func (t *DedupTracker) CheckAndRecord(hash, path string) (string, bool) {
	if original, ok := t.seen[hash]; ok {
		return original, true
	}
	t.init()
	t.seen[hash] = path
	return "", false
}

// Len is the number of distinct hashes recorded.
func (t *DedupTracker) Len() int {
	return len(t.seen)
}

func (t *DedupTracker) init() {
	if t.seen == nil {
		t.seen = make(map[string]string)
	}
}
