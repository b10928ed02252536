package component

// HumanControl marks the entity driven by the keyboard.
type HumanControl struct{}

var HumanControlComponent = NewComponent[HumanControl]()
