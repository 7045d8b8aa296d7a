/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package member derives access traits for struct fields and methods.
//
// A Trait is the mechanical description of one member: whether it is data
// or callable, which type owns it, its value or call signature, whether it
// is read-only, and typed accessors to read, write or invoke it on an
// object of the owning type. Traits come from three places:
//
//   - Lookup and All inspect a type with reflect;
//   - FromFunc takes a method expression such as (*Point).Move;
//   - Data and ReadOnly wrap field accessor closures, which is what
//     generated code uses.
//
// Objects are passed as T or *T. Writes and pointer-receiver calls need *T.
package member

import (
	"errors"
	"fmt"
	"reflect"

	"dirpx.dev/tix/attribute"
	"dirpx.dev/tix/match"
)

var (
	// ErrNotFound is returned when a type has no member of the given name.
	ErrNotFound = errors.New("tix(member): no such member")
	// ErrInvalid is returned for functions that cannot act as a member.
	ErrInvalid = errors.New("tix(member): invalid member function")
	// ErrNotOwner is returned when the object is not of the owning type.
	ErrNotOwner = errors.New("tix(member): object type does not own member")
	// ErrNilObject is returned for nil objects.
	ErrNilObject = errors.New("tix(member): nil object")
	// ErrConst is returned when writing a read-only member.
	ErrConst = errors.New("tix(member): member is read-only")
	// ErrWriteOnly is returned when reading a write-only member.
	ErrWriteOnly = errors.New("tix(member): member is write-only")
	// ErrNotAddressable is returned when a write or pointer call gets a value
	// instead of a pointer.
	ErrNotAddressable = errors.New("tix(member): object is not addressable")
	// ErrNotData is returned when reading or writing a callable member.
	ErrNotData = errors.New("tix(member): member is not a data member")
	// ErrNotFunc is returned when calling a data member.
	ErrNotFunc = errors.New("tix(member): member is not callable")
	// ErrArgs is returned when call arguments do not fit the signature.
	ErrArgs = errors.New("tix(member): arguments do not match signature")
	// ErrTypeMismatch is returned when a written value has the wrong type.
	ErrTypeMismatch = errors.New("tix(member): value type mismatch")
)

// Kind separates data members from callable members.
type Kind uint8

const (
	// KindData is a field or field accessor.
	KindData Kind = iota + 1
	// KindFunc is a method or receiver-first function.
	KindFunc
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindData:
		return "data"
	case KindFunc:
		return "func"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Trait describes one member of an owning type.
type Trait struct {
	name    string
	kind    Kind
	owner   reflect.Type
	typ     reflect.Type
	ptrRecv bool
	attrs   attribute.List
	// goName is the Go identifier of a field renamed by its tag.
	goName string

	// get reads a data member from the owner value recv.
	get func(recv reflect.Value) (reflect.Value, error)
	// set writes a data member; recv is addressable. nil for read-only accessors.
	set func(recv reflect.Value, v reflect.Value) error
	// fn is the receiver-first function of a callable member.
	fn reflect.Value
}

// Name returns the member name.
func (t *Trait) Name() string { return t.name }

// Kind returns the member kind.
func (t *Trait) Kind() Kind { return t.kind }

// IsData reports a data member.
func (t *Trait) IsData() bool { return t.kind == KindData }

// IsFunc reports a callable member.
func (t *Trait) IsFunc() bool { return t.kind == KindFunc }

// Owner returns the owning type (never a pointer type).
func (t *Trait) Owner() reflect.Type { return t.owner }

// Type returns the value type of a data member, or the func type without
// receiver of a callable member.
func (t *Trait) Type() reflect.Type { return t.typ }

// Signature returns the receiver-first func type of a callable member, or
// nil for data members.
func (t *Trait) Signature() reflect.Type {
	if t.kind != KindFunc {
		return nil
	}
	return t.fn.Type()
}

// Result returns the value type of a data member or the first result of a
// callable member, nil when there is none.
func (t *Trait) Result() reflect.Type {
	if t.kind == KindData {
		return t.typ
	}
	if t.typ.NumOut() == 0 {
		return nil
	}
	return t.typ.Out(0)
}

// Arity returns the number of call parameters. Data members have none.
func (t *Trait) Arity() int {
	if t.kind != KindFunc {
		return 0
	}
	return t.typ.NumIn()
}

// PointerReceiver reports a callable member that needs *Owner.
func (t *Trait) PointerReceiver() bool { return t.ptrRecv }

// Attributes returns the attributes attached to the member.
func (t *Trait) Attributes() attribute.List { return t.attrs }

// Const reports a member that cannot modify its object: a read-only data
// member or a value-receiver method.
func (t *Trait) Const() bool {
	if t.kind == KindFunc {
		return !t.ptrRecv
	}
	return t.set == nil || t.attrs.IsReadOnly()
}

// String renders "Owner.name".
func (t *Trait) String() string {
	return t.owner.String() + "." + t.name
}

// WithAttributes returns a copy of t with extra attributes.
func (t *Trait) WithAttributes(attrs ...any) *Trait {
	c := *t
	c.attrs = t.attrs.With(attrs...)
	return &c
}

// Owns reports whether obj (T or *T) is of the owning type.
func (t *Trait) Owns(obj any) bool {
	_, err := t.receiver(obj)
	return err == nil
}

// Get reads a data member.
func (t *Trait) Get(obj any) (any, error) {
	v, err := t.GetValue(obj)
	if err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

// GetValue is Get returning a reflect.Value.
func (t *Trait) GetValue(obj any) (reflect.Value, error) {
	if t.kind != KindData {
		return reflect.Value{}, fmt.Errorf("%w: %s", ErrNotData, t)
	}
	if t.attrs.IsWriteOnly() {
		return reflect.Value{}, fmt.Errorf("%w: %s", ErrWriteOnly, t)
	}
	recv, err := t.receiver(obj)
	if err != nil {
		return reflect.Value{}, err
	}
	return t.get(recv)
}

// CanSet reports whether Set(obj, ...) can succeed for some value.
func (t *Trait) CanSet(obj any) bool {
	if t.kind != KindData || t.Const() {
		return false
	}
	recv, err := t.receiver(obj)
	return err == nil && recv.CanAddr()
}

// Set writes a data member. obj must be a *Owner. v is converted to the
// member type when a conversion exists.
func (t *Trait) Set(obj any, v any) error {
	return t.SetValue(obj, reflect.ValueOf(v))
}

// SetValue is Set taking a reflect.Value.
func (t *Trait) SetValue(obj any, v reflect.Value) error {
	if t.kind != KindData {
		return fmt.Errorf("%w: %s", ErrNotData, t)
	}
	if t.Const() {
		return fmt.Errorf("%w: %s", ErrConst, t)
	}
	recv, err := t.receiver(obj)
	if err != nil {
		return err
	}
	if !recv.CanAddr() {
		return fmt.Errorf("%w: %s needs *%s", ErrNotAddressable, t, t.owner)
	}
	cv, err := match.Coerce(v, t.typ)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrTypeMismatch, t, err)
	}
	return t.set(recv, cv)
}

// Rank grades an argument list against a callable member.
func (t *Trait) Rank(args ...reflect.Type) match.Quality {
	if t.kind != KindFunc {
		return match.NotCallable
	}
	return match.Args(t.typ, args)
}

// CanCall reports whether the member accepts arguments of the given types.
func (t *Trait) CanCall(args ...reflect.Type) bool {
	return t.Rank(args...).Callable()
}

// Call invokes a callable member and returns its results. Panics raised by
// the member propagate to the caller.
func (t *Trait) Call(obj any, args ...any) ([]any, error) {
	out, err := t.CallValues(obj, args...)
	if err != nil {
		return nil, err
	}
	res := make([]any, len(out))
	for i, o := range out {
		res[i] = o.Interface()
	}
	return res, nil
}

// CallValues is Call returning reflect.Values.
func (t *Trait) CallValues(obj any, args ...any) ([]reflect.Value, error) {
	if t.kind != KindFunc {
		return nil, fmt.Errorf("%w: %s", ErrNotFunc, t)
	}
	recv, err := t.receiver(obj)
	if err != nil {
		return nil, err
	}
	if t.ptrRecv {
		if !recv.CanAddr() {
			return nil, fmt.Errorf("%w: %s needs *%s", ErrNotAddressable, t, t.owner)
		}
		recv = recv.Addr()
	}
	if !match.Args(t.typ, match.TypesOf(args...)).Callable() {
		return nil, fmt.Errorf("%w: %s%s", ErrArgs, t, t.typ.String()[len("func"):])
	}
	in := make([]reflect.Value, 0, len(args)+1)
	in = append(in, recv)
	for i, a := range args {
		v, err := match.CoerceAny(a, match.ParamAt(t.typ, i))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrArgs, t, err)
		}
		in = append(in, v)
	}
	return t.fn.Call(in), nil
}

// receiver resolves obj to a value of the owning type. The result is
// addressable when obj was a pointer.
func (t *Trait) receiver(obj any) (reflect.Value, error) {
	v := reflect.ValueOf(obj)
	if !v.IsValid() {
		return reflect.Value{}, ErrNilObject
	}
	if v.Kind() == reflect.Pointer && v.Type().Elem() == t.owner {
		if v.IsNil() {
			return reflect.Value{}, ErrNilObject
		}
		v = v.Elem()
	}
	if v.Type() != t.owner {
		return reflect.Value{}, fmt.Errorf("%w: %s is not %s", ErrNotOwner, v.Type(), t.owner)
	}
	return v, nil
}

// Indirect strips one pointer level from t.
func Indirect(t reflect.Type) reflect.Type {
	if t != nil && t.Kind() == reflect.Pointer {
		return t.Elem()
	}
	return t
}
