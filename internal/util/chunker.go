package util

// ChunkText splits text into fixed-size character chunks: order preserved,
// no overlap, last chunk may be shorter. Splitting is by rune so multi-byte
// characters are never cut in half. Empty text yields one empty chunk so
// callers always have at least one unit of work.
func ChunkText(text string, chunkSize int) []string {
	if chunkSize <= 0 {
		return []string{text}
	}
	runes := []rune(text)
	if len(runes) == 0 {
		return []string{""}
	}
	out := make([]string, 0, len(runes)/chunkSize+1)
	for i := 0; i < len(runes); i += chunkSize {
		end := i + chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		out = append(out, string(runes[i:end]))
	}
	return out
}
