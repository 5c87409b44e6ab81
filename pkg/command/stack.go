package command

// Stack is the undo-stack collaborator. It receives finished cold
// commands, applies them, and replays them in LIFO order. A clean
// checkpoint tracks the last saved position.
type Stack struct {
	commands []Command
	index    int // number of applied commands
	clean    int // index at the clean checkpoint, -1 if unreachable
}

// NewStack returns an empty stack with the clean checkpoint at the start.
func NewStack() *Stack {
	return &Stack{}
}

// Push applies a cold command and makes it the newest undoable entry.
// Any previously undone commands are discarded; pushing nil (a no-op
// intent) does nothing.
func (s *Stack) Push(c Command) {
	if c == nil {
		return
	}
	if s.clean > s.index {
		s.clean = -1
	}
	s.commands = append(s.commands[:s.index], c)
	Redo(c)
	s.index++
}

// CanUndo reports whether an applied command remains.
func (s *Stack) CanUndo() bool { return s.index > 0 }

// CanRedo reports whether an undone command remains.
func (s *Stack) CanRedo() bool { return s.index < len(s.commands) }

// Undo reverts the newest applied command. Returns false when empty.
func (s *Stack) Undo() bool {
	if !s.CanUndo() {
		return false
	}
	s.index--
	Undo(s.commands[s.index])
	return true
}

// Redo re-applies the newest undone command. Returns false when none.
func (s *Stack) Redo() bool {
	if !s.CanRedo() {
		return false
	}
	Redo(s.commands[s.index])
	s.index++
	return true
}

// UndoLabel returns the label of the command Undo would revert.
func (s *Stack) UndoLabel() string {
	if !s.CanUndo() {
		return ""
	}
	return s.commands[s.index-1].Label()
}

// RedoLabel returns the label of the command Redo would apply.
func (s *Stack) RedoLabel() string {
	if !s.CanRedo() {
		return ""
	}
	return s.commands[s.index].Label()
}

// SetClean marks the current position as the saved checkpoint.
func (s *Stack) SetClean() { s.clean = s.index }

// IsClean reports whether the model matches the saved checkpoint.
func (s *Stack) IsClean() bool { return s.clean == s.index }

// Len returns the number of commands on the stack, applied or not.
func (s *Stack) Len() int { return len(s.commands) }
