package editor

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/milk9111/pixelplatformer/level"
)

const maxNameLen = 48

var errEmpty = errors.New("must not be empty")

// Field is a one-line text input with a validator. The editor's prompts
// edit a Field and only submit text the validator accepts.
type Field struct {
	Label    string
	Text     string
	Max      int
	Validate func(string) error
}

// IDField edits a level id usable as a store file name.
func IDField(initial string) *Field {
	return &Field{Label: "Save as id:", Text: initial, Max: 64, Validate: checkID}
}

// NameField edits a level display name.
func NameField(initial string) *Field {
	return &Field{Label: "Level name:", Text: initial, Max: maxNameLen, Validate: checkName}
}

func checkID(s string) error {
	if s == "" {
		return errEmpty
	}
	if !level.ValidID(s) {
		return fmt.Errorf("use letters, digits, '-' or '_'")
	}
	return nil
}

func checkName(s string) error {
	if strings.TrimSpace(s) == "" {
		return errEmpty
	}
	return nil
}

// Insert appends the printable runes of rs, up to Max runes.
func (f *Field) Insert(rs []rune) {
	n := utf8.RuneCountInString(f.Text)
	var b strings.Builder
	b.WriteString(f.Text)
	for _, r := range rs {
		if !unicode.IsPrint(r) || (f.Max > 0 && n >= f.Max) {
			continue
		}
		b.WriteRune(r)
		n++
	}
	f.Text = b.String()
}

// Backspace removes the last rune.
func (f *Field) Backspace() {
	if _, size := utf8.DecodeLastRuneInString(f.Text); size > 0 {
		f.Text = f.Text[:len(f.Text)-size]
	}
}

// Err is the validation error for the current text, or nil.
func (f *Field) Err() error {
	if f.Validate == nil {
		return nil
	}
	return f.Validate(f.Text)
}

// Submit returns the trimmed text when it validates.
func (f *Field) Submit() (string, error) {
	f.Text = strings.TrimSpace(f.Text)
	if err := f.Err(); err != nil {
		return "", err
	}
	return f.Text, nil
}
