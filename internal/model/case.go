package model

// LogRecord is a rendered mutation log entry. Before and After hold the JSON
// encoding of the value, or are empty when the field was absent.
type LogRecord struct {
	Field       string `msgpack:"field" json:"field" yaml:"field"`
	Description string `msgpack:"description" json:"description" yaml:"description"`
	Before      string `msgpack:"before,omitempty" json:"before,omitempty" yaml:"before,omitempty"`
	After       string `msgpack:"after,omitempty" json:"after,omitempty" yaml:"after,omitempty"`
}

// Case is the outcome of one fuzz session in a campaign.
type Case struct {
	Index    int         `msgpack:"index"`
	Seed     int64       `msgpack:"seed"`
	Kind     Kind        `msgpack:"kind"`
	Original []byte      `msgpack:"original,omitempty"`
	Resource []byte      `msgpack:"resource"`
	Log      []LogRecord `msgpack:"log"`
}

// Generated reports whether the case was synthesized rather than fuzzed from
// an input resource.
func (c Case) Generated() bool {
	return len(c.Original) == 0
}

// Summary aggregates a finished campaign.
type Summary struct {
	Kind      Kind
	Cases     int
	Mutations int
	Fields    map[string]int
}
