package modehandler

import (
	"github.com/bethropolis/jotter/internal/input"
	"github.com/bethropolis/jotter/internal/logger"
	"github.com/bethropolis/jotter/internal/notetree"
	"github.com/bethropolis/jotter/internal/tui"
)

// handleActionTree handles the tree pane.
func (mh *ModeHandler) handleActionTree(actionEvent input.ActionEvent) bool {
	switch actionEvent.Action {
	case input.ActionMoveUp:
		mh.moveSelection(-1)
	case input.ActionMoveDown:
		mh.moveSelection(1)
	case input.ActionMovePageUp:
		mh.moveSelection(-mh.pageSize())
	case input.ActionMovePageDown:
		mh.moveSelection(mh.pageSize())
	case input.ActionMoveHome:
		mh.moveSelection(-len(mh.rows))
	case input.ActionMoveEnd:
		mh.moveSelection(len(mh.rows))
	case input.ActionEnter:
		row, ok := mh.selectedRow()
		if !ok || row.Folder {
			return false
		}
		if mh.openNote(row.ID) {
			mh.mode = ModeEdit
		}
	default:
		return false
	}
	return true
}

// Rows returns the visible tree rows.
func (mh *ModeHandler) Rows() []tui.TreeRow {
	return mh.rows
}

// Selected returns the index of the selected row, or -1.
func (mh *ModeHandler) Selected() int {
	return mh.selected
}

func (mh *ModeHandler) selectedRow() (tui.TreeRow, bool) {
	if mh.selected < 0 || mh.selected >= len(mh.rows) {
		return tui.TreeRow{}, false
	}
	return mh.rows[mh.selected], true
}

func (mh *ModeHandler) selectedID() notetree.ID {
	row, _ := mh.selectedRow()
	return row.ID
}

func (mh *ModeHandler) moveSelection(delta int) {
	if len(mh.rows) == 0 {
		return
	}
	mh.selected = max(0, min(mh.selected+delta, len(mh.rows)-1))
}

// selectID selects the row of id and reports whether it exists.
func (mh *ModeHandler) selectID(id notetree.ID) bool {
	for i, row := range mh.rows {
		if row.ID == id {
			mh.selected = i
			return true
		}
	}
	return false
}

func (mh *ModeHandler) clampSelection() {
	switch {
	case len(mh.rows) == 0:
		mh.selected = -1
	case mh.selected < 0:
		mh.selected = 0
	case mh.selected >= len(mh.rows):
		mh.selected = len(mh.rows) - 1
	}
}

// RefreshTree rebuilds the rows after the tree changed in place, keeping
// the selected node.
func (mh *ModeHandler) RefreshTree() {
	id := mh.selectedID()
	mh.rows = tui.TreeRows(mh.session.Tree())
	if id == 0 || !mh.selectID(id) {
		mh.clampSelection()
	}
}

// ReloadTree swaps in a freshly scanned tree. Selection and the open note
// are carried over by path.
func (mh *ModeHandler) ReloadTree(t *notetree.Tree) {
	selectedPath := mh.session.Tree().Path(mh.selectedID())
	wasOpen := mh.session.Current() != 0

	mh.session.Rebind(t)
	mh.rows = tui.TreeRows(t)
	if n, ok := t.Find(selectedPath); ok && selectedPath != "" {
		mh.selectID(n.ID())
	}
	mh.clampSelection()

	if wasOpen && mh.session.Current() == 0 {
		mh.statusBar.SetTemporaryMessage("The open note was removed outside jotter")
		if mh.mode == ModeEdit {
			mh.mode = ModeTree
		}
	}
	logger.DebugTagf("tree", "ModeHandler: Reloaded tree, %d rows", len(mh.rows))
}

// target is the node tree operations act on: the selection in the tree
// pane, the open note in the text pane.
func (mh *ModeHandler) target() notetree.ID {
	if mh.mode == ModeTree {
		return mh.selectedID()
	}
	return mh.session.Current()
}

// creationParent is the folder new items go into.
func (mh *ModeHandler) creationParent() notetree.ID {
	id := mh.target()
	if id == 0 {
		return notetree.RootID
	}
	n, err := mh.session.Tree().Node(id)
	if err != nil {
		return notetree.RootID
	}
	if n.Kind() == notetree.KindContainer {
		return id
	}
	return n.Parent()
}

// openNote loads id into the session. A modified note is saved first; if
// that fails the switch is abandoned.
func (mh *ModeHandler) openNote(id notetree.ID) bool {
	s := mh.session
	if id == s.Current() {
		return true
	}
	if s.Current() != 0 && s.Modified() {
		if err := s.Save(); err != nil {
			mh.statusBar.SetTemporaryMessage("Could not save '%s', staying on it: %v", mh.currentPath(), err)
			return false
		}
	}
	if err := s.Open(id); err != nil {
		mh.statusBar.SetTemporaryMessage("Open failed: %v", err)
		return false
	}
	mh.selectID(id)
	return true
}

func (mh *ModeHandler) createNote(parent notetree.ID, name string) {
	leaf, err := mh.store.CreateLeaf(mh.session.Tree(), parent, name)
	if err != nil {
		mh.statusBar.SetTemporaryMessage("Create failed: %v", err)
		return
	}
	mh.RefreshTree()
	mh.selectID(leaf.ID())
	if mh.openNote(leaf.ID()) {
		mh.mode = ModeEdit
		mh.statusBar.SetTemporaryMessage("Created %s", mh.session.Tree().Path(leaf.ID()))
	}
}

func (mh *ModeHandler) createFolder(parent notetree.ID, name string) {
	c, err := mh.store.CreateContainer(mh.session.Tree(), parent, name)
	if err != nil {
		mh.statusBar.SetTemporaryMessage("Create failed: %v", err)
		return
	}
	mh.RefreshTree()
	mh.selectID(c.ID())
	mh.mode = ModeTree
	mh.statusBar.SetTemporaryMessage("Created folder %s", mh.session.Tree().Path(c.ID()))
}

func (mh *ModeHandler) startRename() {
	id := mh.target()
	if id == 0 || id == notetree.RootID {
		mh.statusBar.SetTemporaryMessage("Nothing to rename")
		return
	}
	n, err := mh.session.Tree().Node(id)
	if err != nil {
		mh.statusBar.SetTemporaryMessage("Rename failed: %v", err)
		return
	}
	mh.startPrompt(promptRename, "Rename", id, n.Name())
}

func (mh *ModeHandler) rename(id notetree.ID, name string) {
	tree := mh.session.Tree()
	if err := mh.store.Rename(tree, id, name); err != nil {
		mh.statusBar.SetTemporaryMessage("Rename failed: %v", err)
		return
	}
	mh.RefreshTree()
	mh.statusBar.SetTemporaryMessage("Renamed to %s", tree.Path(id))
}

// deleteAction removes the target on the second consecutive press.
func (mh *ModeHandler) deleteAction() {
	id := mh.target()
	if id == 0 || id == notetree.RootID {
		mh.statusBar.SetTemporaryMessage("Nothing to delete")
		return
	}
	tree := mh.session.Tree()
	path := tree.Path(id)
	if mh.deletePending != id {
		mh.deletePending = id
		mh.statusBar.SetTemporaryMessage("Delete '%s'? Press Ctrl+D again to confirm.", path)
		return
	}
	mh.deletePending = 0

	// The open note is only dropped once the store has let go of it.
	holds := mh.session.Holds(id)
	if err := mh.store.Remove(tree, id); err != nil {
		mh.statusBar.SetTemporaryMessage("Delete failed: %v", err)
		return
	}
	if holds {
		mh.session.Close()
	}
	mh.RefreshTree()
	if mh.session.Current() == 0 {
		mh.mode = ModeTree
	}
	mh.statusBar.SetTemporaryMessage("Deleted %s", path)
}
