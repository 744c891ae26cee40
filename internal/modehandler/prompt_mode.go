package modehandler

import (
	"github.com/bethropolis/jotter/internal/commands"
	"github.com/bethropolis/jotter/internal/input"
	"github.com/bethropolis/jotter/internal/logger"
	"github.com/bethropolis/jotter/internal/notetree"
)

type promptKind int

const (
	promptNewNote promptKind = iota + 1
	promptNewFolder
	promptRename
	promptExportNote
	promptExportProject
)

// promptState is the name or path being typed on the status line.
type promptState struct {
	kind   promptKind
	label  string
	text   []rune
	target notetree.ID // Parent for creation, node for rename, unused for export
}

func (mh *ModeHandler) startPrompt(kind promptKind, label string, target notetree.ID, initial string) {
	mh.prevMode = mh.mode
	mh.mode = ModePrompt
	mh.prompt = promptState{kind: kind, label: label, text: []rune(initial), target: target}
	mh.statusBar.ResetTemporaryMessage()
	mh.statusBar.SetPrompt(label, initial)
	logger.DebugTagf("input", "ModeHandler: Prompt '%s' opened", label)
}

// handleActionPrompt handles actions while a name is being typed.
func (mh *ModeHandler) handleActionPrompt(actionEvent input.ActionEvent) bool {
	switch actionEvent.Action {
	case input.ActionInsertRune:
		mh.prompt.text = append(mh.prompt.text, actionEvent.Rune)
	case input.ActionDeleteCharBackward:
		if len(mh.prompt.text) > 0 {
			mh.prompt.text = mh.prompt.text[:len(mh.prompt.text)-1]
		}
	case input.ActionEnter:
		mh.confirmPrompt()
		return true
	case input.ActionQuit:
		mh.closePrompt()
		logger.DebugTagf("input", "ModeHandler: Prompt canceled")
		return true
	default:
		return false
	}
	mh.statusBar.SetPrompt(mh.prompt.label, string(mh.prompt.text))
	return true
}

func (mh *ModeHandler) closePrompt() {
	mh.mode = mh.prevMode
	mh.prompt = promptState{}
	mh.statusBar.ClearPrompt()
}

func (mh *ModeHandler) confirmPrompt() {
	p := mh.prompt
	name := string(p.text)
	mh.closePrompt()

	switch p.kind {
	case promptNewNote:
		mh.createNote(p.target, name)
	case promptNewFolder:
		mh.createFolder(p.target, name)
	case promptRename:
		mh.rename(p.target, name)
	case promptExportNote:
		mh.runCommand(commands.CommandExport, name)
	case promptExportProject:
		mh.runCommand(commands.CommandExportProject, name)
	}
}

// PromptText returns the label and the text typed so far, if a prompt is open.
func (mh *ModeHandler) PromptText() (label, text string, ok bool) {
	if mh.mode != ModePrompt {
		return "", "", false
	}
	return mh.prompt.label, string(mh.prompt.text), true
}
