package domain

// ListFuzzer applies an element fuzzer to a repeating field. It never changes
// the length of a non-empty list.
type ListFuzzer[E any] struct {
	elem TypeFuzzer[E]
}

// NewListFuzzer wraps elem.
func NewListFuzzer[E any](elem TypeFuzzer[E]) *ListFuzzer[E] {
	return &ListFuzzer[E]{elem: elem}
}

// Context implements TypeFuzzer.
func (l *ListFuzzer[E]) Context() *Context {
	return l.elem.Context()
}

// GenerateRandom returns a singleton list.
func (l *ListFuzzer[E]) GenerateRandom() []E {
	return []E{l.elem.GenerateRandom()}
}

// Fuzz fills an empty list with one generated element, or fuzzes the first
// element of a non-empty one.
func (l *ListFuzzer[E]) Fuzz(list []E) []E {
	if len(list) == 0 {
		return l.GenerateRandom()
	}

	list[0] = l.elem.Fuzz(list[0])

	return list
}

// FuzzField is Fuzz over the list stored at ref, logged under field.
func (l *ListFuzzer[E]) FuzzField(field string, ref *[]E) {
	c := l.Context()

	if len(*ref) == 0 {
		created := l.GenerateRandom()
		*ref = created
		c.AddLog(field, opSet, nil, created)

		return
	}

	mark := c.log.Len()
	old := (*ref)[0]

	c.Within(c.Qualify(field)+"[0]", func() {
		(*ref)[0] = l.elem.Fuzz(old)
	})

	// Leaf element fuzzers do not log; record the element change here.
	if c.log.Len() == mark {
		c.AddLog(field+"[0]", opReplace, old, (*ref)[0])
	}
}
