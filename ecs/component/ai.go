package component

// ScriptControl steers an entity with a tengo script. Disabled is set once
// the script fails to compile or run.
type ScriptControl struct {
	Script   string
	Disabled bool
}

var ScriptControlComponent = NewComponent[ScriptControl]()
