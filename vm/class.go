package vm

import (
	"sort"
	"sync"
)

// ---------------------------------------------------------------------------
// Class: guest class representation
// ---------------------------------------------------------------------------

// Layout describes how an object of a class stores its state.
type Layout uint8

const (
	LayoutInstance  Layout = iota // named slots only
	LayoutBoolean                 // value is bool
	LayoutByte                    // value is int8
	LayoutShort                   // value is int16
	LayoutInteger                 // value is int32
	LayoutLong                    // value is int64
	LayoutFloat                   // value is float32
	LayoutDouble                  // value is float64
	LayoutString                  // value is string
	LayoutArray                   // value is []any holding *Object
	LayoutByteArray               // value is []byte
	LayoutHashMap                 // value is *hashMap
	LayoutIterator                // value is *iterState
	LayoutFunction                // value is *Function
	LayoutClass                   // value is *Class
	LayoutFrame                   // value is *Frame
	LayoutThrowable               // named slots, value is []*Frame
	LayoutForeign                 // raw holds a foreign value
)

// Class represents a guest class. Classes double as the dispatch shape of
// their instances.
type Class struct {
	Name       string   // Class name
	Namespace  string   // Namespace (empty for default)
	Superclass *Class   // Parent class (nil for Object)
	InstVars   []string // Instance variable names declared here
	NumSlots   int      // Total number of slots needed
	Layout     Layout

	mu      sync.RWMutex
	methods map[string]*Function

	mirrorOnce sync.Once
	mirror     *Object
}

// NewClass creates a class inheriting its superclass's layout and slots.
func NewClass(name, namespace string, superclass *Class, instVars ...string) *Class {
	c := &Class{
		Name:       name,
		Namespace:  namespace,
		Superclass: superclass,
		InstVars:   instVars,
	}
	if superclass != nil {
		c.NumSlots = superclass.NumSlots
		c.Layout = superclass.Layout
	}
	c.NumSlots += len(instVars)
	return c
}

// InstVarIndex returns the slot index for an instance variable by name.
// Returns -1 if the variable is not found.
func (c *Class) InstVarIndex(name string) int {
	for i, n := range c.InstVars {
		if n == name {
			return c.instVarOffset() + i
		}
	}
	if c.Superclass != nil {
		return c.Superclass.InstVarIndex(name)
	}
	return -1
}

// instVarOffset returns the starting slot index for this class's instance variables.
func (c *Class) instVarOffset() int {
	return c.NumSlots - len(c.InstVars)
}

// AllInstVarNames returns all instance variable names including inherited ones.
func (c *Class) AllInstVarNames() []string {
	if c.Superclass == nil {
		return c.InstVars
	}
	inherited := c.Superclass.AllInstVarNames()
	result := make([]string, len(inherited)+len(c.InstVars))
	copy(result, inherited)
	copy(result[len(inherited):], c.InstVars)
	return result
}

// IsSubclassOf returns true if c is a subclass of other (or is the same class).
func (c *Class) IsSubclassOf(other *Class) bool {
	for current := c; current != nil; current = current.Superclass {
		if current == other {
			return true
		}
	}
	return false
}

// FullName returns the namespace-qualified name.
func (c *Class) FullName() string {
	if c.Namespace == "" {
		return c.Name
	}
	return c.Namespace + "::" + c.Name
}

// String implements the Stringer interface.
func (c *Class) String() string {
	return c.FullName()
}

// ---------------------------------------------------------------------------
// Methods
// ---------------------------------------------------------------------------

// Define installs fn as a method. Methods receive the receiver as their
// first argument; fn's arity excludes it.
func (c *Class) Define(fn *Function) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.methods == nil {
		c.methods = make(map[string]*Function)
	}
	fn.Declaring = c
	fn.method = true
	c.methods[fn.Name] = fn
}

// LookupMethod finds a method in c or its superclasses.
func (c *Class) LookupMethod(name string) *Function {
	for current := c; current != nil; current = current.Superclass {
		current.mu.RLock()
		fn := current.methods[name]
		current.mu.RUnlock()
		if fn != nil {
			return fn
		}
	}
	return nil
}

// MethodNames returns the sorted names of all methods understood by
// instances of c.
func (c *Class) MethodNames() []string {
	seen := make(map[string]bool)
	var names []string
	for current := c; current != nil; current = current.Superclass {
		current.mu.RLock()
		for name := range current.methods {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
		current.mu.RUnlock()
	}
	sort.Strings(names)
	return names
}

// Mirror returns the guest object representing c.
func (c *Class) Mirror() *Object {
	c.mirrorOnce.Do(func() {
		c.mirror = &Object{class: ClassClass, value: c}
	})
	return c.mirror
}
