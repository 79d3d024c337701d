// Package driver loads and runs deduction scenario files: yaml documents
// that declare a scope of named entities and a list of expressions to
// resolve under either deduction policy, with the expected type or error
// for each. Scenario files back the CLI's check command and the golden
// tests.
package driver
