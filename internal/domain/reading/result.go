package reading

// FetchResult is the outcome of one fetch attempt for one URL.
// It is immutable once constructed.
type FetchResult struct {
	url  string
	seq  uint64
	feed *Feed
	err  error
}

// Succeeded builds a success-tagged result. The feed is copied.
func Succeeded(url string, seq uint64, feed *Feed) FetchResult {
	f := feed.Clone()
	if f == nil {
		f = new(Feed{URL: url})
	}
	if f.URL == "" {
		f.URL = url
	}
	return FetchResult{url: url, seq: seq, feed: f}
}

// Failed builds a failure-tagged result.
func Failed(url string, seq uint64, err error) FetchResult {
	if err == nil {
		err = &FetchError{URL: url, Kind: KindNetwork}
	}
	return FetchResult{url: url, seq: seq, err: err}
}

// URL returns the feed URL the result belongs to.
func (r FetchResult) URL() string { return r.url }

// Seq returns the dispatch sequence number. Zero means untagged.
func (r FetchResult) Seq() uint64 { return r.seq }

// OK reports whether the fetch succeeded.
func (r FetchResult) OK() bool { return r.err == nil }

// Err returns the failure detail, nil on success.
func (r FetchResult) Err() error { return r.err }

// Feed returns a copy of the fetched feed, nil on failure.
func (r FetchResult) Feed() *Feed { return r.feed.Clone() }
