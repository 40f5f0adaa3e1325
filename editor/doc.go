/*
Package editor contains the note editing engine of the piano roll.

The Model struct holds the note collection, the selection, the timeline
position, the last used note defaults and the undo/redo history. The
presentation layer never modifies the notes directly; rather, there are typed
methods and the types Action and Int which manipulate the model in a
controlled way. For example, model.DeleteSelected() returns an Action to delete
the selected notes, which can be executed with model.DeleteSelected().Do().
Every change to the notes is routed through the same history recording, so
that model.History().Undo() and model.History().Redo() can step through them.

Interaction is the pointer and keyboard state machine on top of the Model. It
receives raw input events in pixel coordinates, classifies each pointer
gesture into a mode (move, trim, extend, marquee, vibrato, velocity) and
applies the mutations frame by frame, always computed from the snapshot of
the notes taken when the gesture started.

The Model and the Interaction are owned by a single goroutine. Changes are
published to the presentation layer through the Broker without ever
blocking.
*/
package editor
