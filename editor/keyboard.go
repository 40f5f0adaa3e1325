package editor

// KeyEvent is a key press. Code is the physical key code, e.g. "KeyZ",
// "Space" or "Backspace". InTextInput is true when the keyboard focus is in a
// text field of the presentation layer, such as the lyric editor of a note.
type KeyEvent struct {
	Code        string
	Mods        Modifiers
	InTextInput bool
}

// KeyDown runs the action bound to the key, if any. It reports whether the
// event was consumed. Keys pressed without the shortcut or alt modifiers are
// left to a focused text field.
func (in *Interaction) KeyDown(e KeyEvent) bool {
	action, ok := in.keys.Lookup(e)
	if !ok {
		return false
	}
	if e.InTextInput && !e.Mods.Command() && !e.Mods.Alt {
		return false
	}
	m := in.m
	switch action {
	case "Undo":
		m.History().Undo().Do()
	case "Redo":
		m.History().Redo().Do()
	case "Copy":
		m.Copy().Do()
	case "Cut":
		m.Cut().Do()
	case "Paste":
		m.Paste().Do()
	case "SelectAll":
		m.SelectAll().Do()
	case "UpOctave":
		m.UpOctave().Do()
	case "DownOctave":
		m.DownOctave().Do()
	case "DeleteSelected":
		m.DeleteSelected().Do()
	case "TogglePlay":
		m.send(MsgToGUI{Kind: GUIMessageTogglePlay, Param: m.SelectionTicks()})
	default:
		m.logger.Warn("unknown key action", "key", e.Code, "action", action)
		return false
	}
	return true
}
