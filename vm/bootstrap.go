package vm

import "encoding/binary"

// ---------------------------------------------------------------------------
// Core classes
// ---------------------------------------------------------------------------

const (
	CoreNamespace     = "core"
	PolyglotNamespace = "polyglot"
)

var (
	ObjectClass    *Class
	BooleanClass   *Class
	NumberClass    *Class
	ByteClass      *Class
	ShortClass     *Class
	IntegerClass   *Class
	LongClass      *Class
	FloatClass     *Class
	DoubleClass    *Class
	StringClass    *Class
	ArrayClass     *Class
	ByteArrayClass *Class
	HashMapClass   *Class
	IteratorClass  *Class
	FunctionClass  *Class
	ClassClass     *Class
	FrameClass     *Class
	ByteOrderClass *Class
	ForeignClass   *Class

	ThrowableClass            *Class
	ExceptionClass            *Class
	RuntimeExceptionClass     *Class
	ExitExceptionClass        *Class
	InterruptedExceptionClass *Class
	ParseErrorClass           *Class
	ForeignExceptionClass     *Class

	InteropExceptionClass             *Class
	UnsupportedMessageExceptionClass  *Class
	UnknownIdentifierExceptionClass   *Class
	ArityExceptionClass               *Class
	UnsupportedTypeExceptionClass     *Class
	InvalidArrayIndexExceptionClass   *Class
	InvalidBufferOffsetExceptionClass *Class
	StopIterationExceptionClass       *Class
	UnknownKeyExceptionClass          *Class
)

// Byte order tokens. Buffer messages take one of these and compare it by
// identity: LittleEndian selects little-endian, anything else big-endian.
var (
	LittleEndian *Object
	BigEndian    *Object
)

func init() {
	bootstrapCoreClasses()
	bootstrapExceptionClasses()

	LittleEndian = NewInstance(ByteOrderClass)
	BigEndian = NewInstance(ByteOrderClass)
}

func layoutClass(name string, super *Class, layout Layout) *Class {
	c := NewClass(name, CoreNamespace, super)
	c.Layout = layout
	return c
}

func bootstrapCoreClasses() {
	ObjectClass = NewClass("Object", CoreNamespace, nil)
	BooleanClass = layoutClass("Boolean", ObjectClass, LayoutBoolean)
	NumberClass = layoutClass("Number", ObjectClass, LayoutInstance)
	ByteClass = layoutClass("Byte", NumberClass, LayoutByte)
	ShortClass = layoutClass("Short", NumberClass, LayoutShort)
	IntegerClass = layoutClass("Integer", NumberClass, LayoutInteger)
	LongClass = layoutClass("Long", NumberClass, LayoutLong)
	FloatClass = layoutClass("Float", NumberClass, LayoutFloat)
	DoubleClass = layoutClass("Double", NumberClass, LayoutDouble)
	StringClass = layoutClass("String", ObjectClass, LayoutString)
	ArrayClass = layoutClass("Object[]", ObjectClass, LayoutArray)
	ByteArrayClass = layoutClass("byte[]", ObjectClass, LayoutByteArray)
	HashMapClass = layoutClass("HashMap", ObjectClass, LayoutHashMap)
	IteratorClass = layoutClass("Iterator", ObjectClass, LayoutIterator)
	FunctionClass = layoutClass("Function", ObjectClass, LayoutFunction)
	ClassClass = layoutClass("Class", ObjectClass, LayoutClass)
	FrameClass = layoutClass("StackTraceElement", ObjectClass, LayoutFrame)
	ByteOrderClass = layoutClass("ByteOrder", ObjectClass, LayoutInstance)

	ForeignClass = NewClass("Foreign", PolyglotNamespace, ObjectClass)
	ForeignClass.Layout = LayoutForeign
}

func bootstrapExceptionClasses() {
	ThrowableClass = layoutClass("Throwable", ObjectClass, LayoutThrowable)
	ThrowableClass.InstVars = []string{"message", "cause"}
	ThrowableClass.NumSlots = 2

	ExceptionClass = NewClass("Exception", CoreNamespace, ThrowableClass)
	RuntimeExceptionClass = NewClass("RuntimeException", CoreNamespace, ExceptionClass)
	ExitExceptionClass = NewClass("ExitException", CoreNamespace, RuntimeExceptionClass, "status")
	InterruptedExceptionClass = NewClass("InterruptedException", CoreNamespace, ExceptionClass)
	ParseErrorClass = NewClass("ParseError", CoreNamespace, RuntimeExceptionClass, "incompleteSource")

	ForeignExceptionClass = NewClass("ForeignException", PolyglotNamespace, RuntimeExceptionClass)
	ForeignExceptionClass.Layout = LayoutForeign

	InteropExceptionClass = NewClass("InteropException", PolyglotNamespace, ExceptionClass)
	sub := func(name string, instVars ...string) *Class {
		return NewClass(name, PolyglotNamespace, InteropExceptionClass, instVars...)
	}
	UnsupportedMessageExceptionClass = sub("UnsupportedMessageException")
	UnknownIdentifierExceptionClass = sub("UnknownIdentifierException", "unknownIdentifier")
	ArityExceptionClass = sub("ArityException", "expectedMinArity", "expectedMaxArity", "actualArity")
	UnsupportedTypeExceptionClass = sub("UnsupportedTypeException", "suppliedValues", "hint")
	InvalidArrayIndexExceptionClass = sub("InvalidArrayIndexException", "invalidIndex")
	InvalidBufferOffsetExceptionClass = sub("InvalidBufferOffsetException", "byteOffset", "length")
	StopIterationExceptionClass = sub("StopIterationException")
	UnknownKeyExceptionClass = sub("UnknownKeyException", "unknownKey")
}

// ByteOrderOf maps a byte order token to a Go byte order.
func ByteOrderOf(token *Object) binary.ByteOrder {
	if token == LittleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}
