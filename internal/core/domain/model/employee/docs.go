// Package employee holds the staff accounts that act on orders and the
// capability table that decides which role may perform which operation.
package employee
