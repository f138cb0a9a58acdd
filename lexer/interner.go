package lexer

// Interner deduplicates short lexemes within one tokenization.
//
// Scripts repeat the same handful of identifiers, keywords and operators
// over and over ("set", "to", "tell", "(", ","). Sharing a single string per
// distinct lexeme keeps a large token sequence from holding thousands of
// identical copies.
type Interner struct {
	pool map[string]string
}

// NewInterner creates a new string interner with the given initial capacity.
func NewInterner(capacity int) *Interner {
	return &Interner{
		pool: make(map[string]string, capacity),
	}
}

// Intern returns the canonical version of the string.
func (i *Interner) Intern(s string) string {
	if interned, ok := i.pool[s]; ok {
		return interned
	}
	i.pool[s] = s
	return s
}

// InternBytes converts a byte slice to a string and interns it.
func (i *Interner) InternBytes(b []byte) string {
	// The compiler avoids allocating for a string(b) used only as a map key.
	if interned, ok := i.pool[string(b)]; ok {
		return interned
	}
	s := string(b)
	i.pool[s] = s
	return s
}

// Size returns the number of unique strings in the intern pool.
func (i *Interner) Size() int {
	return len(i.pool)
}
