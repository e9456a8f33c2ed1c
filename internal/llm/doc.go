// Package llm provides a uniform prompt-completion gateway over multiple
// LLM providers. Callers depend only on the Client interface; provider wire
// formats never leak past this package.
package llm
