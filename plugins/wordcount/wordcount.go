// plugins/wordcount/wordcount.go
package wordcount

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/bethropolis/jotter/internal/commands"
	"github.com/bethropolis/jotter/internal/plugin"
	"github.com/rivo/uniseg"
)

// CommandName is the command the plugin registers.
const CommandName = commands.CommandWordCount

var _ plugin.Plugin = (*WordCount)(nil)

// WordCount reports line, word and character counts of the open note.
type WordCount struct {
	api plugin.EditorAPI
}

// New creates a new instance of the WordCount plugin.
func New() plugin.Plugin {
	return &WordCount{}
}

// Name returns the unique name of the plugin.
func (p *WordCount) Name() string {
	return "wordcount"
}

// Initialize registers the wordcount command.
func (p *WordCount) Initialize(api plugin.EditorAPI) error {
	p.api = api
	if err := api.RegisterCommand(CommandName, p.executeWordCount); err != nil {
		return fmt.Errorf("failed to register '%s' command: %w", CommandName, err)
	}
	return nil
}

// Shutdown performs cleanup (nothing needed for this simple plugin).
func (p *WordCount) Shutdown() error {
	return nil
}

func (p *WordCount) executeWordCount(args []string) error {
	if p.api == nil {
		return fmt.Errorf("wordcount plugin not initialized with API")
	}
	if p.api.CurrentNotePath() == "" {
		return fmt.Errorf("no note is open")
	}

	s := Count(p.api.Text())
	p.api.SetStatusMessage("Lines: %d, Words: %d, Chars: %d", s.Lines, s.Words, s.Chars)
	return nil
}

// Stats holds the counts for one text.
type Stats struct {
	Lines int
	Words int
	Chars int // Grapheme clusters
}

// Count computes the stats of text. Words follow Unicode word boundaries and
// must contain a letter or a digit; punctuation runs do not count.
func Count(text string) Stats {
	if text == "" {
		return Stats{}
	}
	return Stats{
		Lines: strings.Count(text, "\n") + 1,
		Words: countWords(text),
		Chars: uniseg.GraphemeClusterCount(text),
	}
}

func countWords(text string) int {
	count := 0
	state := -1
	var word string
	for len(text) > 0 {
		word, text, state = uniseg.FirstWordInString(text, state)
		if isWord(word) {
			count++
		}
	}
	return count
}

func isWord(segment string) bool {
	for _, r := range segment {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return true
		}
	}
	return false
}
