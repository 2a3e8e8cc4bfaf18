package srcindex

// Mask returns a byte-for-byte copy of raw with comment text and the
// contents of string/char literals replaced by spaces, newlines
// preserved. Byte offsets and the total length never change, so a
// Match.Point computed against either copy is valid against the other.
//
// The state machine mirrors codecleaner.rs's CodeIndicesIter, extended
// to also blank char literals and raw strings (r#"..."#, any number of
// '#').
func Mask(raw []byte) []byte {
	out := make([]byte, len(raw))
	copy(out, raw)

	i := 0
	n := len(out)
	blank := func(from, to int) {
		for j := from; j < to; j++ {
			if out[j] != '\n' {
				out[j] = ' '
			}
		}
	}

	for i < n {
		c := out[i]
		switch {
		case c == '/' && i+1 < n && out[i+1] == '/':
			start := i
			for i < n && out[i] != '\n' {
				i++
			}
			blank(start, i)

		case c == '/' && i+1 < n && out[i+1] == '*':
			start := i
			i += 2
			depth := 1
			for i < n && depth > 0 {
				if i+1 < n && out[i] == '/' && out[i+1] == '*' {
					depth++
					i += 2
					continue
				}
				if i+1 < n && out[i] == '*' && out[i+1] == '/' {
					depth--
					i += 2
					continue
				}
				i++
			}
			blank(start, i)

		case c == '"':
			// Plain string literal.
			i++
			start := i
			for i < n {
				if out[i] == '\\' && i+1 < n {
					i += 2
					continue
				}
				if out[i] == '"' {
					break
				}
				i++
			}
			blank(start, i)
			if i < n {
				i++ // closing quote
			}

		case c == 'r' && i+1 < n && (out[i+1] == '"' || out[i+1] == '#'):
			if end, ok := tryRawString(out, i); ok {
				i = end
			} else {
				i++
			}

		case c == '\'':
			if end, contentStart, contentEnd, ok := tryCharLiteral(out, i); ok {
				blank(contentStart, contentEnd)
				i = end
			} else {
				// Lifetime or stray quote: leave untouched.
				i++
			}

		default:
			i++
		}
	}

	return out
}

// tryRawString recognizes r#*"..."#* starting at pos (pos is the 'r').
// Returns the index just past the closing quote run.
func tryRawString(src []byte, pos int) (int, bool) {
	i := pos + 1
	hashes := 0
	for i < len(src) && src[i] == '#' {
		hashes++
		i++
	}
	if i >= len(src) || src[i] != '"' {
		return 0, false
	}
	i++ // opening quote
	contentStart := i
	for i < len(src) {
		if src[i] == '"' {
			// Check for `hashes` following '#' characters.
			j := i + 1
			k := 0
			for j < len(src) && k < hashes && src[j] == '#' {
				j++
				k++
			}
			if k == hashes {
				for b := contentStart; b < i; b++ {
					if src[b] != '\n' {
						src[b] = ' '
					}
				}
				return j, true
			}
		}
		i++
	}
	return 0, false
}

// tryCharLiteral recognizes 'c' or '\x' style char literals starting at
// pos (pos is the opening quote). It distinguishes a char literal from
// a lifetime (e.g. `'a`) by requiring a matching closing quote within a
// couple of bytes.
func tryCharLiteral(src []byte, pos int) (end, contentStart, contentEnd int, ok bool) {
	i := pos + 1
	if i >= len(src) {
		return 0, 0, 0, false
	}
	contentStart = i
	if src[i] == '\\' {
		i++
		// Escape sequences: \n, \t, \\, \', \", \0, \xNN, \u{...}
		if i < len(src) && src[i] == 'u' && i+1 < len(src) && src[i+1] == '{' {
			i += 2
			for i < len(src) && src[i] != '}' {
				i++
			}
			if i < len(src) {
				i++
			}
		} else if i < len(src) {
			i++
		}
	} else {
		i++
	}
	contentEnd = i
	if i < len(src) && src[i] == '\'' {
		return i + 1, contentStart, contentEnd, true
	}
	return 0, 0, 0, false
}
