package service

import (
	"fmt"
	"strings"
)

// PreviewRunes is how much of each source is shown under the answer.
const PreviewRunes = 150

// Render formats an answer for display, followed by a numbered list of source
// previews when there are any.
func Render(answer string, sources []string) string {
	if len(sources) == 0 {
		return answer
	}

	var b strings.Builder
	b.WriteString(answer)
	b.WriteString("\n\n---")
	b.WriteString("\n\n**🔍 Nguồn thông tin tham khảo:**")
	for i, src := range sources {
		fmt.Fprintf(&b, "\n%d. *%s...*", i+1, Preview(src))
	}
	return b.String()
}

// Preview flattens a source to one line and cuts it to PreviewRunes runes.
func Preview(source string) string {
	preview := strings.TrimSpace(strings.ReplaceAll(source, "\n", " "))
	runes := []rune(preview)
	if len(runes) > PreviewRunes {
		return string(runes[:PreviewRunes])
	}
	return preview
}
