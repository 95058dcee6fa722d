package field

// Key is a keyboard event already classified by the view layer.
type Key int

const (
	KeyOther Key = iota
	KeyEscape
	KeyEnter
	// KeySubmit is the submit accelerator (Enter plus a modifier). It saves
	// multiline fields, where plain Enter inserts a newline.
	KeySubmit
)

func (k Key) String() string {
	switch k {
	case KeyEscape:
		return "escape"
	case KeyEnter:
		return "enter"
	case KeySubmit:
		return "submit"
	default:
		return "other"
	}
}

// KeyOptions controls the keyboard shortcuts layered over the transitions.
type KeyOptions struct {
	DisableAutoSubmit bool
	DisableAutoCancel bool
	Multiline         bool
}
