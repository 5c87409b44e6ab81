// Package command implements the reversible command engine of the
// diagram core. Every structural edit is expressed as a tree of commands:
// a primitive leaf plus the compensating children the builder discovered
// while applying it. Redo applies the tree top-down, undo reverts it
// bottom-up, and a redo after an undo restores bit-identical model state.
package command

// Command is a reversible unit of model change. The primitive action and
// its inverse are unexported so that only this package can define command
// kinds; callers drive commands through Redo and Undo, which traverse the
// child tree iteratively.
type Command interface {
	// Label is a short human-readable description for undo menus.
	Label() string
	// Children returns the compensating child commands in apply order.
	Children() []Command

	// apply performs this node's own primitive action, children excluded.
	apply()
	// revert exactly inverts apply.
	revert()
}

// Redo applies the command tree in pre-order: each node's own action
// first, then its children left to right. The traversal is iterative so
// deeply nested group operations cannot exhaust the call stack.
func Redo(c Command) {
	for _, cmd := range preorder(c) {
		cmd.apply()
	}
}

// Undo reverts the command tree in exact reverse application order.
func Undo(c Command) {
	cmds := preorder(c)
	for i := len(cmds) - 1; i >= 0; i-- {
		cmds[i].revert()
	}
}

// preorder flattens the tree into application order.
func preorder(c Command) []Command {
	var out []Command
	stack := []Command{c}
	for len(stack) > 0 {
		cmd := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, cmd)
		children := cmd.Children()
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	return out
}

// compound carries the label and child list shared by every command kind.
type compound struct {
	label    string
	children []Command
}

func (c *compound) Label() string       { return c.label }
func (c *compound) Children() []Command { return c.children }

func (c *compound) addChild(cmd Command) {
	c.children = append(c.children, cmd)
}

// Composite is a pure grouping node with no primitive action of its own.
// Group and ungroup wrap their remove/add halves in one.
type Composite struct {
	compound
}

// NewComposite creates an empty composite command.
func NewComposite(label string) *Composite {
	return &Composite{compound{label: label}}
}

// AddChild appends a child command, applied after the existing children.
func (c *Composite) AddChild(cmd Command) { c.addChild(cmd) }

func (c *Composite) apply()  {}
func (c *Composite) revert() {}
