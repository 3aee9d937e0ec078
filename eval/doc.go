// Package eval selects nodes with expr-lang expressions.
//
// A filter program is evaluated once per child of a node and must yield a
// boolean. The program sees the child through these variables:
//
//	name   the child's name
//	index  its position among its siblings
//	size   its number of children
//	value  the name of its first child, or ""
//
// and these functions:
//
//	getpath(p)  the value at path p below the child, or ""
//	haspath(p)  whether path p resolves below the child
//	whereami()  the child's path from the root
//	getenv(v)   the environment variable v
//
// For example
//
//	name == "server" && getpath("port") == "80"
package eval
