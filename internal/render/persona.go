// Package render finalizes generated persona text and writes it to disk.
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/suykerbuyk/persona-gen/internal/activity"
	"github.com/suykerbuyk/persona-gen/internal/errs"
	"github.com/suykerbuyk/persona-gen/internal/persona"
)

// ApplyCounts replaces the "X posts" and "Y comments" placeholder tokens
// with the counts, so "X posts" becomes "2 posts". Text without the tokens
// is returned unchanged.
func ApplyCounts(text string, c activity.Counts) string {
	text = strings.ReplaceAll(text, persona.PostsPlaceholder, strconv.Itoa(c.Posts)+" posts")
	return strings.ReplaceAll(text, persona.CommentsPlaceholder, strconv.Itoa(c.Comments)+" comments")
}

// HasPlaceholders reports whether both placeholder tokens appear in text.
func HasPlaceholders(text string) bool {
	return strings.Contains(text, persona.PostsPlaceholder) &&
		strings.Contains(text, persona.CommentsPlaceholder)
}

// PersonaPath returns outDir/<username>_persona.txt.
func PersonaPath(outDir, username string) string {
	return filepath.Join(outDir, fmt.Sprintf("%s_persona.txt", username))
}

// Write substitutes counts into text and writes it to PersonaPath,
// creating outDir if needed and replacing any earlier file.
func Write(outDir, username, text string, c activity.Counts) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", errs.Filesystem("create output dir", outDir, err)
	}

	path := PersonaPath(outDir, username)
	if err := os.WriteFile(path, []byte(ApplyCounts(text, c)), 0o644); err != nil {
		return "", errs.Filesystem("write persona", path, err)
	}
	return path, nil
}
