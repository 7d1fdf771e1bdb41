package index

import "strings"

// normalizeText strips control bytes and collapses whitespace so chunk
// boundaries are not dominated by PDF layout artifacts.
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\x00", " ")
	text = strings.ToValidUTF8(text, "")
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	return strings.Join(strings.Fields(text), " ")
}

// chunkText splits text into overlapping fixed-size chunks, measured in
// runes. The last chunk may be shorter than size.
func chunkText(text string, size, overlap int) []string {
	if size <= 0 {
		return nil
	}
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	step := size - overlap
	if step <= 0 {
		step = size
	}
	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		part := strings.TrimSpace(string(runes[start:end]))
		if part != "" {
			chunks = append(chunks, part)
		}
		if end == len(runes) {
			break
		}
	}
	return chunks
}
