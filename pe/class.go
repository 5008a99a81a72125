package pe

// Class is a class (or anonymous class body) PE. Name is empty for an
// anonymous class.
type Class struct {
	Base
	Name    string
	Methods []*Method
}

// NewClass allocates a Class PE.
func NewClass(counter *IDCounter, astNode interface{}, name string) *Class {
	return &Class{Base: newBase(counter, KindClass, astNode), Name: name}
}

// AddMethod appends a method to the class.
func (c *Class) AddMethod(m *Method) {
	c.Methods = append(c.Methods, m)
}
