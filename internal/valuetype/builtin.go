package valuetype

import (
	"errors"
	"math/big"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

var (
	// Integer is the format of whole-number variables.
	Integer = IntegerFormat{}
	// Number is the format of real-number variables.
	Number = NumberFormat{}
	// String is the format of text variables.
	String = StringFormat{}
	// Boolean is the format of true/false variables.
	Boolean = BooleanFormat{}
)

var (
	errNull       = errors.New("value is null")
	errUnknown    = errors.New("value is not known")
	errNotWhole   = errors.New("value is not a whole number")
	errOutOfRange = errors.New("value is out of range")
)

// known converts v to ty and rejects null and unknown results.
func known(v cty.Value, ty cty.Type, name string) (cty.Value, error) {
	if v.IsNull() {
		return cty.NilVal, &ConversionError{Format: name, Value: describe(v), Err: errNull}
	}
	if !v.IsWhollyKnown() {
		return cty.NilVal, &ConversionError{Format: name, Value: describe(v), Err: errUnknown}
	}
	out, err := convert.Convert(v, ty)
	if err != nil {
		return cty.NilVal, &ConversionError{Format: name, Value: describe(v), Err: err}
	}
	return out, nil
}

// IntegerFormat maps whole cty numbers to int64.
type IntegerFormat struct{}

func (IntegerFormat) Tag() Tag       { return TagInteger }
func (IntegerFormat) Name() string   { return "Integer" }
func (IntegerFormat) Type() cty.Type { return cty.Number }
func (IntegerFormat) Zero() int64    { return 0 }

func (f IntegerFormat) FromValue(v cty.Value) (int64, error) {
	v, err := known(v, cty.Number, f.Name())
	if err != nil {
		return 0, err
	}
	bf := v.AsBigFloat()
	if !bf.IsInt() {
		return 0, &ConversionError{Format: f.Name(), Value: bf.Text('g', -1), Err: errNotWhole}
	}
	i, acc := bf.Int64()
	if acc != big.Exact {
		return 0, &ConversionError{Format: f.Name(), Value: bf.Text('g', -1), Err: errOutOfRange}
	}
	return i, nil
}

func (IntegerFormat) ToValue(v int64) cty.Value { return cty.NumberIntVal(v) }

// NumberFormat maps cty numbers to float64.
type NumberFormat struct{}

func (NumberFormat) Tag() Tag       { return TagNumber }
func (NumberFormat) Name() string   { return "Number" }
func (NumberFormat) Type() cty.Type { return cty.Number }
func (NumberFormat) Zero() float64  { return 0 }

func (f NumberFormat) FromValue(v cty.Value) (float64, error) {
	v, err := known(v, cty.Number, f.Name())
	if err != nil {
		return 0, err
	}
	out, _ := v.AsBigFloat().Float64()
	return out, nil
}

func (NumberFormat) ToValue(v float64) cty.Value { return cty.NumberFloatVal(v) }

// StringFormat maps cty strings to string.
type StringFormat struct{}

func (StringFormat) Tag() Tag       { return TagString }
func (StringFormat) Name() string   { return "String" }
func (StringFormat) Type() cty.Type { return cty.String }
func (StringFormat) Zero() string   { return "" }

func (f StringFormat) FromValue(v cty.Value) (string, error) {
	v, err := known(v, cty.String, f.Name())
	if err != nil {
		return "", err
	}
	return v.AsString(), nil
}

func (StringFormat) ToValue(v string) cty.Value { return cty.StringVal(v) }

// BooleanFormat maps cty bools to bool.
type BooleanFormat struct{}

func (BooleanFormat) Tag() Tag       { return TagBoolean }
func (BooleanFormat) Name() string   { return "Boolean" }
func (BooleanFormat) Type() cty.Type { return cty.Bool }
func (BooleanFormat) Zero() bool     { return false }

func (f BooleanFormat) FromValue(v cty.Value) (bool, error) {
	v, err := known(v, cty.Bool, f.Name())
	if err != nil {
		return false, err
	}
	return v.True(), nil
}

func (BooleanFormat) ToValue(v bool) cty.Value { return cty.BoolVal(v) }
