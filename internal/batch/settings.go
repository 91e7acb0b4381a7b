package batch

import "fmt"

// Flag names one of the per-run settings.
type Flag int

const (
	FlagNone Flag = iota
	FlagDeleteSource
	FlagRelocateParent
	FlagRelocateChild
)

// Settings are the per-run flags gathered before any file is processed.
type Settings struct {
	DeleteSource     bool
	RelocateToParent bool
	RelocateToChild  bool
}

// Set assigns the setting named by flag.
func (s *Settings) Set(flag Flag, value bool) {
	switch flag {
	case FlagDeleteSource:
		s.DeleteSource = value
	case FlagRelocateParent:
		s.RelocateToParent = value
	case FlagRelocateChild:
		s.RelocateToChild = value
	}
}

// Question is one yes/no prompt asked while configuring a run.
type Question struct {
	Flag    Flag
	Title   string
	Text    string
	Default bool
}

// Prompter answers questions, typically through a Yes/No menu.
type Prompter interface {
	Confirm(q Question) (bool, error)
}

// Questions lists what Configure asks for op, in order.
func Questions(op Operation, defaults Settings) []Question {
	questions := []Question{{
		Flag:    FlagDeleteSource,
		Title:   op.Title,
		Text:    "Delete source files when done?",
		Default: defaults.DeleteSource,
	}}
	if op.AllowsParent {
		questions = append(questions, Question{
			Flag:    FlagRelocateParent,
			Title:   op.Title,
			Text:    "Move output files to the parent directory?",
			Default: defaults.RelocateToParent,
		})
	}
	if op.AllowsChild {
		questions = append(questions, Question{
			Flag:    FlagRelocateChild,
			Title:   op.Title,
			Text:    "Extract each file into a new directory named after it?",
			Default: defaults.RelocateToChild,
		})
	}
	return questions
}

// Configure asks every question op supports, once, and returns fresh
// Settings. defaults seeds the preselected answers.
func Configure(p Prompter, op Operation, defaults Settings) (Settings, error) {
	var settings Settings
	for _, q := range Questions(op, defaults) {
		answer, err := p.Confirm(q)
		if err != nil {
			return Settings{}, fmt.Errorf("configure %s: %w", op.Kind, err)
		}
		settings.Set(q.Flag, answer)
	}
	return settings, nil
}
