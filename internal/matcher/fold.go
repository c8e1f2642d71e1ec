package matcher

// foldASCII lowercases the ASCII letters in b, leaving every other byte
// untouched. Unlike bytes.ToLower it never changes the byte length, so
// offsets into the folded slice are valid offsets into the original.
// The fixed-string backends fold ASCII only; full Unicode folding goes
// through the regex engines with (?i).
func foldASCII(b []byte) []byte {
	folded := b
	copied := false
	for i, c := range b {
		if c < 'A' || c > 'Z' {
			continue
		}
		if !copied {
			folded = append([]byte(nil), b...)
			copied = true
		}
		folded[i] = c + ('a' - 'A')
	}
	return folded
}
