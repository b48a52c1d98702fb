package text

import (
	"fmt"
	"strings"
)

// Address space pointer dereferences use when none is given
const DefaultSpace = "ram"

// Name of the stack pointer register
const StackPointer = "SP"

// Returns a placeholder referencing a field or named field
func Field(id string) string {
	return "{" + id + "}"
}

// Returns a placeholder referencing a pcode local
func Var(name string) string {
	return "{$" + name + "}"
}

// Terminates a pcode statement
func Op(statement string) string {
	return statement + ";"
}

// Returns a call to a macro or user defined pcode operation
func Macro(name string, args ...string) string {
	return fmt.Sprintf("%v(%v)", name, strings.Join(args, ", "))
}

func Local(name string, size int) string {
	return fmt.Sprintf("local %v:%v", name, size)
}

func Copy(dst string, src string) string {
	return fmt.Sprintf("%v = %v", dst, src)
}

// Dereferences size bytes at addr in the default address space
func Ptr(size int, addr string) string {
	return PtrIn(DefaultSpace, size, addr)
}

func PtrIn(space string, size int, addr string) string {
	return fmt.Sprintf("*[%v]:%v %v", space, size, addr)
}

// Returns an indirect return through addr
func Return(addr string) string {
	return fmt.Sprintf("return [%v]", addr)
}

func Goto(target string) string {
	return "goto " + target
}

func IfGoto(condition string, target string) string {
	return fmt.Sprintf("if (%v) goto %v", condition, target)
}

// Returns a pcode label, usable as a goto target
func Label(name string) string {
	return "<" + name + ">"
}

func Call(target string) string {
	return "call " + target
}

// Returns the statements pushing a value of size bytes on the stack
func Push(value string, size int) []string {
	return []string{
		Op(Copy(StackPointer, fmt.Sprintf("%v - %v", StackPointer, size))),
		Op(Copy(Ptr(size, StackPointer), value)),
	}
}

// Returns the statements popping a value of size bytes from the stack into dst
func Pop(dst string, size int) []string {
	return []string{
		Op(Copy(dst, Ptr(size, StackPointer))),
		Op(Copy(StackPointer, fmt.Sprintf("%v + %v", StackPointer, size))),
	}
}
