package contracts

import "strconv"

type ValueKind uint8

const (
	KindEmpty ValueKind = iota
	KindNumber
	KindText
	KindError
)

const CircularReferenceMarker = "#CIRCULAR!"

const EvaluationErrorMarker = "#ERROR!"

// Value is a literal stored in a cell or the displayed result of resolving one.
// Error values carry their marker in Text and display like any other text.
type Value struct {
	Kind   ValueKind
	Number float64
	Text   string
}

var EmptyValue = Value{}

var CircularValue = Value{Kind: KindError, Text: CircularReferenceMarker}

var ErrorValue = Value{Kind: KindError, Text: EvaluationErrorMarker}

func NumberValue(number float64) Value {
	return Value{Kind: KindNumber, Number: number}
}

func TextValue(text string) Value {
	return Value{Kind: KindText, Text: text}
}

func (v Value) IsEmpty() bool {
	return v.Kind == KindEmpty
}

func (v Value) IsNumber() bool {
	return v.Kind == KindNumber
}

func (v Value) IsError() bool {
	return v.Kind == KindError
}

func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case KindText, KindError:
		return v.Text
	default:
		return ""
	}
}
