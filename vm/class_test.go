package vm

import (
	"sort"
	"testing"
)

// ---------------------------------------------------------------------------
// Class creation tests
// ---------------------------------------------------------------------------

func TestNewClass(t *testing.T) {
	c := NewClass("Point", "geo", ObjectClass, "x", "y")
	if c.Name != "Point" {
		t.Errorf("Name = %q, want %q", c.Name, "Point")
	}
	if c.Superclass != ObjectClass {
		t.Error("superclass should be Object")
	}
	if c.NumSlots != 2 {
		t.Errorf("NumSlots = %d, want 2", c.NumSlots)
	}
	if c.Layout != LayoutInstance {
		t.Errorf("Layout = %d, want LayoutInstance", c.Layout)
	}
	if got := c.FullName(); got != "geo::Point" {
		t.Errorf("FullName() = %q, want %q", got, "geo::Point")
	}
}

func TestClassInheritsSlotsAndLayout(t *testing.T) {
	point := NewClass("Point", "", ObjectClass, "x", "y")
	colorPoint := NewClass("ColorPoint", "", point, "color")

	if colorPoint.NumSlots != 3 {
		t.Errorf("ColorPoint.NumSlots = %d, want 3", colorPoint.NumSlots)
	}
	if got := colorPoint.InstVarIndex("x"); got != 0 {
		t.Errorf("InstVarIndex(x) = %d, want 0", got)
	}
	if got := colorPoint.InstVarIndex("color"); got != 2 {
		t.Errorf("InstVarIndex(color) = %d, want 2", got)
	}
	if got := colorPoint.InstVarIndex("z"); got != -1 {
		t.Errorf("InstVarIndex(z) = %d, want -1", got)
	}
	names := colorPoint.AllInstVarNames()
	if len(names) != 3 || names[0] != "x" || names[2] != "color" {
		t.Errorf("AllInstVarNames() = %v", names)
	}

	failure := NewClass("MyFailure", "app", RuntimeExceptionClass, "code")
	if failure.Layout != LayoutThrowable {
		t.Error("exception subclasses should keep the throwable layout")
	}
	if failure.InstVarIndex("message") != 0 || failure.InstVarIndex("code") != 2 {
		t.Error("throwable slots should come before subclass slots")
	}
}

func TestIsSubclassOf(t *testing.T) {
	if !IntegerClass.IsSubclassOf(NumberClass) {
		t.Error("Integer should be a subclass of Number")
	}
	if !IntegerClass.IsSubclassOf(IntegerClass) {
		t.Error("a class is a subclass of itself")
	}
	if StringClass.IsSubclassOf(NumberClass) {
		t.Error("String should not be a subclass of Number")
	}
	if !ArityExceptionClass.IsSubclassOf(ExceptionClass) {
		t.Error("interop exceptions should be guest exceptions")
	}
}

// ---------------------------------------------------------------------------
// Methods
// ---------------------------------------------------------------------------

func TestDefineAndLookupMethod(t *testing.T) {
	base := NewClass("Base", "", ObjectClass)
	derived := NewClass("Derived", "", base)

	base.Define(&Function{Name: "greet", Fn: func(args []*Object) (*Object, error) {
		return NewString("hello"), nil
	}})
	derived.Define(&Function{Name: "wave", Fn: func(args []*Object) (*Object, error) {
		return Null, nil
	}})

	m := derived.LookupMethod("greet")
	if m == nil {
		t.Fatal("inherited method not found")
	}
	if m.Declaring != base {
		t.Error("Declaring should be the defining class")
	}
	if derived.LookupMethod("missing") != nil {
		t.Error("unknown method should not be found")
	}

	names := derived.MethodNames()
	if !sort.StringsAreSorted(names) || len(names) != 2 {
		t.Errorf("MethodNames() = %v, want 2 sorted names", names)
	}
}

func TestMirrorIsStable(t *testing.T) {
	m := StringClass.Mirror()
	if m != StringClass.Mirror() {
		t.Error("Mirror should return the same object every time")
	}
	if m.Class() != ClassClass {
		t.Error("mirror should be an instance of Class")
	}
	if m.Value().(*Class) != StringClass {
		t.Error("mirror should carry its class")
	}
}
