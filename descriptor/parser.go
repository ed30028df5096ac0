package descriptor

// DefaultCacheSize is the number of descriptors a Parser keeps by default
const DefaultCacheSize = 256

// ParserOption configures a Parser
type ParserOption func(*Parser)

// WithCache sets the cache size. A size of zero disables caching.
func WithCache(size int) ParserOption {
	return func(p *Parser) {
		if size > 0 {
			p.cache = newLRUCache(size)
		} else {
			p.cache = nil
		}
	}
}

// Parser parses descriptor strings, remembering recent results so that
// generated API methods pay the parse cost once per return type.
type Parser struct {
	cache *lruCache
}

// NewParser creates a parser with a DefaultCacheSize cache
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{cache: newLRUCache(DefaultCacheSize)}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses s, consulting the cache first. Malformed input is never cached.
func (p *Parser) Parse(s string) (Descriptor, error) {
	if p.cache != nil {
		if d, ok := p.cache.Get(s); ok {
			return d, nil
		}
	}

	d, err := Parse(s)
	if err != nil {
		return Descriptor{}, err
	}

	if p.cache != nil {
		p.cache.Put(s, d)
	}
	return d, nil
}

// Clear drops every cached descriptor
func (p *Parser) Clear() {
	if p.cache != nil {
		p.cache.Clear()
	}
}

// Size returns the number of cached descriptors
func (p *Parser) Size() int {
	if p.cache != nil {
		return p.cache.Len()
	}
	return 0
}
