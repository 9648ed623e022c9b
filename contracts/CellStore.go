package contracts

type CellReader interface {
	GetCell(address string) (Cell, bool)
}

// CellStore is the read/write contract every collaborator of the engine goes through.
type CellStore interface {
	CellReader
	SetValue(address string, value Value) error
	SetFormula(address string, formula string) error
	SetStyle(address string, style CellStyle) error
	Addresses() []string
}

type FormulaEvaluator interface {
	Resolve(address string) Value
	EvaluateFormula(formula string) Value
}
